package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchCase shapes replacement to follow the casing of original: a fully
// upper-case original upper-cases the whole replacement, an original with an
// upper-case first letter capitalizes only the replacement's first letter,
// anything else leaves the replacement as given.
func MatchCase(original, replacement string) string {
	if original == "" || replacement == "" {
		return replacement
	}
	if isAllUpper(original) {
		return strings.ToUpper(replacement)
	}
	first, _ := utf8.DecodeRuneInString(original)
	if unicode.IsUpper(first) {
		r, size := utf8.DecodeRuneInString(replacement)
		return string(unicode.ToUpper(r)) + replacement[size:]
	}
	return replacement
}

// isAllUpper reports whether s contains at least one letter and no lower-case
// letters. A single capital letter counts as title case, not all-caps, so
// one-letter originals fall through to the first-letter rule.
func isAllUpper(s string) bool {
	letters := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsLower(r) {
			return false
		}
	}
	return letters > 1
}
