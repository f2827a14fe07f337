// Package rules holds the local deterministic suggestion sources: a closed
// set of built-in pattern passes plus user-defined patterns compiled at pass
// setup. All rules scan a block's flattened text and yield linear-offset
// matches; they never touch structured coordinates.
package rules

import (
	"regexp"
	"strings"

	"github.com/rdeprey/slate-grammar-demo/internal/match"
)

// maxMatchesPerRule bounds how many matches a single rule may contribute to
// one pass so a pathological pattern cannot stall analysis.
const maxMatchesPerRule = 64

var (
	wordRe         = regexp.MustCompile(`[A-Za-z']+`)
	multiSpaceRe   = regexp.MustCompile(`  +`)
	sentenceRe     = regexp.MustCompile(`(^|[.!?]["')\]]*[ \t]+)([a-z])`)
	articleRe      = regexp.MustCompile(`(?i)\b(an?)([ \t]+)([a-z])`)
	subjunctiveRe  = regexp.MustCompile(`(?i)\b(?:if|wish)[ \t]+(?:i|he|she|it|we|they|you)[ \t]+(was)\b`)
	vowels         = "aeiou"
)

// Builtin runs every built-in rule over text and returns the combined
// matches ordered by position.
func Builtin(text string) []match.Match {
	var out []match.Match
	out = append(out, RepeatedWords(text)...)
	out = append(out, CollapseSpaces(text)...)
	out = append(out, SentenceCase(text)...)
	out = append(out, ArticleAgreement(text)...)
	out = append(out, MoodAgreement(text)...)
	match.SortStable(out)
	return out
}

// RepeatedWords flags an immediately repeated word and proposes deleting the
// second occurrence together with the space run before it. RE2 has no
// backreferences, so adjacency is detected by comparing consecutive word
// tokens directly.
func RepeatedWords(text string) []match.Match {
	locs := wordRe.FindAllStringIndex(text, -1)
	var out []match.Match
	for i := 1; i < len(locs) && len(out) < maxMatchesPerRule; i++ {
		prev, cur := locs[i-1], locs[i]
		gap := text[prev[1]:cur[0]]
		if gap == "" || strings.Trim(gap, " \t") != "" {
			continue
		}
		if !strings.EqualFold(text[prev[0]:prev[1]], text[cur[0]:cur[1]]) {
			continue
		}
		out = append(out, match.Match{
			Start:       prev[1],
			End:         cur[1],
			Replacement: "",
			Message:     "Remove the repeated word",
			Source:      match.SourceBuiltin,
		})
	}
	return out
}

// CollapseSpaces proposes replacing any run of two or more spaces with one.
func CollapseSpaces(text string) []match.Match {
	var out []match.Match
	for _, loc := range multiSpaceRe.FindAllStringIndex(text, maxMatchesPerRule) {
		out = append(out, match.Match{
			Start:       loc[0],
			End:         loc[1],
			Replacement: " ",
			Message:     "Collapse repeated spaces",
			Source:      match.SourceBuiltin,
		})
	}
	return out
}

// SentenceCase capitalizes a lower-case letter that starts the text or
// follows sentence-ending punctuation.
func SentenceCase(text string) []match.Match {
	var out []match.Match
	for _, loc := range sentenceRe.FindAllStringSubmatchIndex(text, maxMatchesPerRule) {
		start, end := loc[4], loc[5]
		out = append(out, match.Match{
			Start:       start,
			End:         end,
			Replacement: strings.ToUpper(text[start:end]),
			Message:     "Capitalize the first word of the sentence",
			Source:      match.SourceBuiltin,
		})
	}
	return out
}

// ArticleAgreement fixes "a" before a vowel sound and "an" before a
// consonant, using a closed first-letter heuristic.
func ArticleAgreement(text string) []match.Match {
	var out []match.Match
	for _, loc := range articleRe.FindAllStringSubmatchIndex(text, maxMatchesPerRule) {
		article := text[loc[2]:loc[3]]
		next := strings.ToLower(text[loc[6]:loc[7]])
		vowel := strings.Contains(vowels, next)
		var want string
		switch {
		case len(article) == 1 && vowel:
			want = "an"
		case len(article) == 2 && !vowel:
			want = "a"
		default:
			continue
		}
		out = append(out, match.Match{
			Start:       loc[2],
			End:         loc[3],
			Replacement: MatchCase(article, want),
			Message:     "Use the article that agrees with the following word",
			Source:      match.SourceBuiltin,
		})
	}
	return out
}

// MoodAgreement replaces indicative "was" with subjunctive "were" inside
// "if/wish" clauses.
func MoodAgreement(text string) []match.Match {
	var out []match.Match
	for _, loc := range subjunctiveRe.FindAllStringSubmatchIndex(text, maxMatchesPerRule) {
		start, end := loc[2], loc[3]
		out = append(out, match.Match{
			Start:       start,
			End:         end,
			Replacement: MatchCase(text[start:end], "were"),
			Message:     "Use the subjunctive mood",
			Source:      match.SourceBuiltin,
		})
	}
	return out
}
