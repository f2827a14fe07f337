package rules

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/rdeprey/slate-grammar-demo/internal/match"
)

// Definition is a user-supplied rule: a regular expression, the message shown
// with each hit, and an optional literal replacement. A definition with no
// replacement surfaces as a message-only suggestion whose replacement equals
// the matched text.
type Definition struct {
	Pattern     string `yaml:"pattern" json:"pattern"`
	Message     string `yaml:"message" json:"message"`
	Replacement string `yaml:"replacement,omitempty" json:"replacement,omitempty"`
}

type compiled struct {
	re  *regexp.Regexp
	def Definition
}

// Set is a compiled collection of user rules. Each definition compiles
// independently; a malformed pattern skips that one rule and the rest of the
// set stays usable.
type Set struct {
	rules   []compiled
	skipped int
}

// Compile validates and compiles defs. Malformed patterns are logged at warn
// level and counted, never returned as errors.
func Compile(defs []Definition, logger *zap.Logger) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Set{}
	for _, def := range defs {
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			s.skipped++
			logger.Warn("skipping malformed user rule",
				zap.String("pattern", def.Pattern),
				zap.Error(err))
			continue
		}
		s.rules = append(s.rules, compiled{re: re, def: def})
	}
	return s
}

// Skipped reports how many definitions failed to compile.
func (s *Set) Skipped() int { return s.skipped }

// Len reports how many rules compiled successfully.
func (s *Set) Len() int { return len(s.rules) }

// Apply runs every compiled rule over text. Matches per rule are capped so a
// pathological pattern cannot dominate a pass.
func (s *Set) Apply(text string) []match.Match {
	var out []match.Match
	for _, r := range s.rules {
		for _, loc := range r.re.FindAllStringIndex(text, maxMatchesPerRule) {
			repl := r.def.Replacement
			if repl == "" {
				repl = text[loc[0]:loc[1]]
			}
			out = append(out, match.Match{
				Start:       loc[0],
				End:         loc[1],
				Replacement: repl,
				Message:     r.def.Message,
				Source:      match.SourceUserRule,
			})
		}
	}
	return out
}
