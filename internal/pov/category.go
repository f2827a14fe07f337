// Package pov implements point-of-view inference and propagation over the
// closed third-person pronoun sets. It supplies the heuristic anchor search
// used when no AI resolver is configured, the candidate selection the AI path
// delegates from, and the blanket propagation pass.
package pov

import "strings"

// Category is one of the three closed pronoun alias sets.
type Category string

const (
	Masculine Category = "he"
	Feminine  Category = "she"
	Neutral   Category = "they"
)

// Forms holds the four grammatical forms of a category.
type Forms struct {
	Subject       string // he / she / they
	Object        string // him / her / them
	PossDet       string // his / her / their
	PossPron      string // his / hers / theirs
}

// Categories maps every category to its forms.
var Categories = map[Category]Forms{
	Masculine: {Subject: "he", Object: "him", PossDet: "his", PossPron: "his"},
	Feminine:  {Subject: "she", Object: "her", PossDet: "her", PossPron: "hers"},
	Neutral:   {Subject: "they", Object: "them", PossDet: "their", PossPron: "theirs"},
}

// literalCategory maps each pronoun literal to its category. "his" and "her"
// each cover two forms of their category, so the map stays unambiguous.
var literalCategory = map[string]Category{
	"he": Masculine, "him": Masculine, "his": Masculine,
	"she": Feminine, "her": Feminine, "hers": Feminine,
	"they": Neutral, "them": Neutral, "their": Neutral, "theirs": Neutral,
}

// crossTable gives, for (source literal, target category), the replacement
// literal. Cells are intentionally undefined where the target literal would
// be ambiguous beyond repair:
//
//   - "hers" and "theirs" have no cell for the masculine target, because
//     "his" already stands for the determiner form and stacking the
//     possessive-pronoun reading onto it cannot be undone.
//
// A separate, documented lossy case remains inside the defined cells: with a
// feminine target, both "him" and "them" (object case, different source
// categories) map onto the single literal "her", so the original literal
// cannot be recovered afterwards.
var crossTable = map[string]map[Category]string{
	"he":     {Feminine: "she", Neutral: "they"},
	"him":    {Feminine: "her", Neutral: "them"},
	"his":    {Feminine: "her", Neutral: "their"},
	"she":    {Masculine: "he", Neutral: "they"},
	"her":    {Masculine: "him", Neutral: "them"},
	"hers":   {Neutral: "theirs"},
	"they":   {Masculine: "he", Feminine: "she"},
	"them":   {Masculine: "him", Feminine: "her"},
	"their":  {Masculine: "his", Feminine: "her"},
	"theirs": {Feminine: "hers"},
}

// CategoryOf resolves a pronoun literal (any casing) to its category.
func CategoryOf(literal string) (Category, bool) {
	c, ok := literalCategory[strings.ToLower(literal)]
	return c, ok
}

// ParseCategory resolves a category label as returned by the AI collaborator.
// Anything outside the closed set, including "unknown", resolves to false.
func ParseCategory(label string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(label))) {
	case Masculine:
		return Masculine, true
	case Feminine:
		return Feminine, true
	case Neutral:
		return Neutral, true
	}
	return "", false
}

// Replacement looks up the cross-mapping cell for a source literal and target
// category. An undefined cell returns false; callers skip the occurrence
// silently.
func Replacement(literal string, target Category) (string, bool) {
	row, ok := crossTable[strings.ToLower(literal)]
	if !ok {
		return "", false
	}
	repl, ok := row[target]
	return repl, ok
}

// inTargetSet reports whether a literal already belongs to the target
// category's alias set.
func inTargetSet(literal string, target Category) bool {
	c, ok := literalCategory[strings.ToLower(literal)]
	return ok && c == target
}
