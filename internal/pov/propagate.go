package pov

import (
	"github.com/rdeprey/slate-grammar-demo/internal/match"
	"github.com/rdeprey/slate-grammar-demo/internal/rules"
)

// Propagate scans every pronoun occurrence in text and proposes replacing it
// with the target category's form. Occurrences already in the target set are
// skipped, as are literals whose cross-mapping cell is undefined. Casing of
// the original token is preserved on the replacement. The pass is idempotent:
// running it over an already-aligned text yields nothing.
func Propagate(text string, target Category, source match.Source) []match.Match {
	var out []match.Match
	for _, loc := range pronounRe.FindAllStringIndex(text, -1) {
		lit := text[loc[0]:loc[1]]
		if inTargetSet(lit, target) {
			continue
		}
		repl, ok := Replacement(lit, target)
		if !ok {
			continue
		}
		out = append(out, match.Match{
			Start:       loc[0],
			End:         loc[1],
			Replacement: rules.MatchCase(lit, repl),
			Message:     "Align pronoun with the selected point of view",
			Source:      source,
		})
	}
	return out
}
