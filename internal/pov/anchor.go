package pov

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// aiAnchorWindow bounds how far (in bytes) from the cursor the AI-backed
// anchor search will look for a pronoun or capitalized word.
const aiAnchorWindow = 15

var (
	pronounRe = regexp.MustCompile(`(?i)\b(he|him|his|she|her|hers|they|them|their|theirs)\b`)
	tokenRe   = regexp.MustCompile(`[A-Za-z']+`)
)

// AnchorToken is a token near the cursor considered as a propagation anchor.
type AnchorToken struct {
	Literal     string
	Start       int
	End         int
	Capitalized bool
	Category    Category // zero value when no category could be inferred
}

// distance returns 0 when the cursor lies within or at either boundary of
// [start, end], otherwise the gap to the nearer boundary.
func distance(cursor, start, end int) int {
	if cursor >= start && cursor <= end {
		return 0
	}
	if cursor < start {
		return start - cursor
	}
	return cursor - end
}

// NearestPronoun finds the pronoun occurrence closest to the cursor and maps
// its literal to a category. Ties keep the earliest-scanned occurrence: the
// running minimum only updates on a strictly smaller distance. Returns false
// when the text holds no pronoun of the closed set.
func NearestPronoun(text string, cursor int) (AnchorToken, bool) {
	best := AnchorToken{}
	bestDist := -1
	for _, loc := range pronounRe.FindAllStringIndex(text, -1) {
		d := distance(cursor, loc[0], loc[1])
		if bestDist >= 0 && d >= bestDist {
			continue
		}
		lit := text[loc[0]:loc[1]]
		cat, _ := CategoryOf(lit)
		best = AnchorToken{
			Literal:     lit,
			Start:       loc[0],
			End:         loc[1],
			Capitalized: startsUpper(lit),
			Category:    cat,
		}
		bestDist = d
	}
	return best, bestDist >= 0
}

// AnchorCandidate finds the nearest pronoun-or-capitalized-word within the
// fixed window around the cursor. It carries no category: the caller
// delegates inference for the literal to the AI collaborator. Returns false
// when nothing usable sits inside the window.
func AnchorCandidate(text string, cursor int) (AnchorToken, bool) {
	best := AnchorToken{}
	bestDist := -1
	for _, loc := range tokenRe.FindAllStringIndex(text, -1) {
		d := distance(cursor, loc[0], loc[1])
		if d > aiAnchorWindow {
			continue
		}
		lit := text[loc[0]:loc[1]]
		_, isPronoun := CategoryOf(lit)
		if !isPronoun && !startsUpper(lit) {
			continue
		}
		if bestDist >= 0 && d >= bestDist {
			continue
		}
		best = AnchorToken{
			Literal:     lit,
			Start:       loc[0],
			End:         loc[1],
			Capitalized: startsUpper(lit),
		}
		bestDist = d
	}
	return best, bestDist >= 0
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
