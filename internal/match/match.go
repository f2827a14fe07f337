// Package match defines the normalized span record every suggestion source
// produces. Sources report heterogeneous shapes (regex indices, remote service
// offsets, AI replacement lists); all of them are converted into this one
// tagged variant before aggregation so nothing loosely typed travels
// downstream.
package match

import "sort"

// Source tags which adapter produced a match.
type Source string

const (
	SourceBuiltin   Source = "builtin"   // local deterministic rules
	SourceUserRule  Source = "user_rule" // user-defined patterns
	SourceGrammar   Source = "grammar"   // remote grammar service
	SourceCoref     Source = "coref"     // AI coreference resolver
	SourceHeuristic Source = "heuristic" // deterministic POV fallback
)

// Match is an ephemeral, source-scoped span in the linear-offset space of one
// block's flattened text. Start and End are byte offsets; Replacement is the
// text that should take the span's place.
type Match struct {
	Start       int
	End         int
	Replacement string
	Message     string
	Source      Source
}

// SortStable orders matches ascending by start, then by span length. The
// aggregator relies on this ordering before deduplication.
func SortStable(ms []Match) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Start != ms[j].Start {
			return ms[i].Start < ms[j].Start
		}
		return ms[i].End-ms[i].Start < ms[j].End-ms[j].Start
	})
}
