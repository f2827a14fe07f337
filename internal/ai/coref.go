package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rdeprey/slate-grammar-demo/internal/match"
	"github.com/rdeprey/slate-grammar-demo/internal/pov"
)

const categorySystemPrompt = `You classify a single English word from a text
into a pronoun point-of-view category. Answer with exactly one of:
he, she, they, unknown. No other output.`

const alignSystemPrompt = `You resolve pronoun coreference in a text. Given an
anchor referent and a target pronoun category, list every pronoun that refers
to that specific referent and its aligned replacement. Exclude pronouns that
refer to other referents. Respond with a JSON array of objects:
[{"offset":int,"length":int,"original":string,"replacement":string}]
Offsets are byte offsets into the given text. No other output.`

// InferCategory asks the collaborator which point-of-view category the anchor
// literal denotes within contextText. An "unknown" or unparseable response
// yields ok=false; it is never an error for the pass.
func InferCategory(ctx context.Context, client Client, contextText, literal string, logger *zap.Logger) (pov.Category, bool) {
	if logger == nil {
		logger = zap.NewNop()
	}
	prompt := fmt.Sprintf("Text:\n%s\n\nWord: %q\nCategory:", contextText, literal)
	raw, err := client.CompleteWithSystem(ctx, categorySystemPrompt, prompt)
	if err != nil {
		logger.Warn("category inference unavailable", zap.Error(err))
		return "", false
	}
	cat, ok := pov.ParseCategory(raw)
	if !ok {
		logger.Debug("category inference returned no usable label",
			zap.String("raw", raw))
		return "", false
	}
	return cat, true
}

// alignment mirrors the collaborator's per-pronoun replacement record.
type alignment struct {
	Offset      int    `json:"offset"`
	Length      int    `json:"length"`
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
}

// AlignPronouns asks the collaborator for literal per-pronoun replacements
// scoped to the anchored referent. Records whose offsets do not line up with
// the stated original text are dropped; an unparseable response is an error
// so the engine can substitute the heuristic fallback.
func AlignPronouns(ctx context.Context, client Client, text, anchor string, target pov.Category, logger *zap.Logger) ([]match.Match, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	prompt := fmt.Sprintf("Text:\n%s\n\nAnchor referent: %q\nTarget category: %s\nAlignments:",
		text, anchor, target)
	raw, err := client.CompleteWithSystem(ctx, alignSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai: alignment request failed: %w", err)
	}

	aligns, ok := parseAlignments(raw)
	if !ok {
		return nil, fmt.Errorf("ai: no parseable alignment in response")
	}

	out := make([]match.Match, 0, len(aligns))
	for _, a := range aligns {
		if a.Offset < 0 || a.Length <= 0 || a.Offset+a.Length > len(text) {
			continue
		}
		if a.Original != "" && !strings.EqualFold(text[a.Offset:a.Offset+a.Length], a.Original) {
			logger.Debug("dropping misaligned coreference record",
				zap.Int("offset", a.Offset),
				zap.String("original", a.Original))
			continue
		}
		if a.Replacement == "" {
			continue
		}
		out = append(out, match.Match{
			Start:       a.Offset,
			End:         a.Offset + a.Length,
			Replacement: a.Replacement,
			Message:     "Align pronoun with the selected point of view",
			Source:      match.SourceCoref,
		})
	}
	return out, nil
}

// parseAlignments tries each JSON candidate in the response until one decodes
// as an alignment list. A bare object decodes as a single-element list.
func parseAlignments(raw string) ([]alignment, bool) {
	for _, cand := range scanJSONValues(raw) {
		var list []alignment
		if err := json.Unmarshal([]byte(cand), &list); err == nil {
			return list, true
		}
		var one alignment
		if err := json.Unmarshal([]byte(cand), &one); err == nil && one.Length > 0 {
			return []alignment{one}, true
		}
	}
	return nil, false
}
