package engine

import (
	"fmt"
	"sort"

	"github.com/rdeprey/slate-grammar-demo/internal/document"
)

// ApplyOne replaces the suggestion's structured range with its replacement as
// one atomic edit. The caller must run a fresh analysis pass afterwards:
// every previously computed suggestion is invalid once the edit lands.
func ApplyOne(ed document.Editor, s Suggestion) error {
	if err := ed.ReplaceRange(s.Span, s.Replacement); err != nil {
		return fmt.Errorf("engine: apply suggestion %s: %w", s.ID, err)
	}
	return nil
}

// ApplyBatch applies several suggestions from the same pass without an
// intermediate re-mapping pass. The batch is sorted by descending structured
// position (end-to-start) first, so no edit invalidates the coordinates of
// edits still pending. When a cross-segment group appears in the batch, only
// its earliest fragment carries the replacement; later fragments are deleted,
// keeping the group equivalent to one edit.
func ApplyBatch(ed document.Editor, ss []Suggestion) error {
	batch := make([]Suggestion, len(ss))
	copy(batch, ss)

	groupFirst := make(map[string]int) // group id -> earliest linear start
	for _, s := range batch {
		if cur, ok := groupFirst[s.GroupID]; !ok || s.LinearStart < cur {
			groupFirst[s.GroupID] = s.LinearStart
		}
	}
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].LinearStart > batch[j].LinearStart
	})

	for _, s := range batch {
		repl := s.Replacement
		if groupFirst[s.GroupID] != s.LinearStart {
			repl = ""
		}
		if err := ed.ReplaceRange(s.Span, repl); err != nil {
			return fmt.Errorf("engine: apply suggestion %s: %w", s.ID, err)
		}
	}
	return nil
}

// NearestToCursor resolves the suggestion nearest a linear cursor offset:
// containment first, then the smallest forward distance, then the smallest
// backward distance.
func (r *Result) NearestToCursor(cursor int) (Suggestion, bool) {
	for _, s := range r.Suggestions {
		if cursor >= s.LinearStart && cursor <= s.LinearEnd {
			return s, true
		}
	}
	var best Suggestion
	bestDist := -1
	for _, s := range r.Suggestions {
		if s.LinearStart <= cursor {
			continue
		}
		if d := s.LinearStart - cursor; bestDist < 0 || d < bestDist {
			best, bestDist = s, d
		}
	}
	if bestDist >= 0 {
		return best, true
	}
	for _, s := range r.Suggestions {
		if s.LinearEnd >= cursor {
			continue
		}
		if d := cursor - s.LinearEnd; bestDist < 0 || d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, bestDist >= 0
}

// Skip returns the collapsed cursor position at the suggestion range's end
// boundary. The text is untouched.
func Skip(s Suggestion) document.Point { return s.Span.End }
