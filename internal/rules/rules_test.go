package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rdeprey/slate-grammar-demo/internal/match"
)

func TestMatchCase(t *testing.T) {
	cases := []struct {
		original, replacement, want string
	}{
		{"HELLO", "world", "WORLD"},
		{"Hello", "world", "World"},
		{"hello", "world", "world"},
		{"A", "an", "An"},
		{"", "world", "world"},
	}
	for _, c := range cases {
		if got := MatchCase(c.original, c.replacement); got != c.want {
			t.Errorf("MatchCase(%q, %q) = %q, want %q", c.original, c.replacement, got, c.want)
		}
	}
}

func TestDemoSentence(t *testing.T) {
	text := "This is  a demo. It fixes the the basics."
	ms := Builtin(text)

	var collapse, repeat *match.Match
	for i := range ms {
		m := &ms[i]
		switch {
		case m.Replacement == " " && m.Source == match.SourceBuiltin:
			collapse = m
		case m.Replacement == "" && m.Source == match.SourceBuiltin:
			repeat = m
		}
	}

	require.NotNil(t, collapse, "expected a double-space collapse")
	assert.Equal(t, "is", text[collapse.Start-2:collapse.Start])
	assert.Equal(t, "a", text[collapse.End:collapse.End+1])

	require.NotNil(t, repeat, "expected a repeated-word removal")
	// Deletes the second "the" plus its leading space.
	assert.Equal(t, " the", text[repeat.Start:repeat.End])
	assert.Equal(t, "the", text[repeat.Start-3:repeat.Start])
}

func TestArticleAgreement(t *testing.T) {
	ms := ArticleAgreement("I ate a apple today.")
	require.Len(t, ms, 1)
	assert.Equal(t, "an", ms[0].Replacement)
	assert.Equal(t, 6, ms[0].Start)
	assert.Equal(t, 7, ms[0].End)

	ms = ArticleAgreement("She saw an cat.")
	require.Len(t, ms, 1)
	assert.Equal(t, "a", ms[0].Replacement)

	assert.Empty(t, ArticleAgreement("an apple and a cat"))
}

func TestArticleCasePreserved(t *testing.T) {
	ms := ArticleAgreement("A apple fell.")
	require.Len(t, ms, 1)
	assert.Equal(t, "An", ms[0].Replacement)
}

func TestSentenceCase(t *testing.T) {
	ms := SentenceCase("hello. the end")
	require.Len(t, ms, 2)
	assert.Equal(t, "H", ms[0].Replacement)
	assert.Equal(t, 0, ms[0].Start)
	assert.Equal(t, "T", ms[1].Replacement)
	assert.Equal(t, 7, ms[1].Start)
}

func TestMoodAgreement(t *testing.T) {
	ms := MoodAgreement("If I was rich I would travel.")
	require.Len(t, ms, 1)
	assert.Equal(t, "were", ms[0].Replacement)
	assert.Equal(t, "was", "If I was rich I would travel."[ms[0].Start:ms[0].End])
}

func TestRepeatedWordsIgnoresLineBreaks(t *testing.T) {
	assert.Empty(t, RepeatedWords("the\nthe"))
	assert.Empty(t, RepeatedWords("the cat"))
}

func TestRepeatedWordsCaseInsensitive(t *testing.T) {
	ms := RepeatedWords("The the story")
	require.Len(t, ms, 1)
	assert.Equal(t, " the", "The the story"[ms[0].Start:ms[0].End])
}

func TestUserRuleCompile(t *testing.T) {
	set := Compile([]Definition{
		{Pattern: `\bteh\b`, Message: "typo", Replacement: "the"},
		{Pattern: `[invalid`, Message: "broken"},
		{Pattern: `\bvery\b`, Message: "weak intensifier"},
	}, zap.NewNop())

	assert.Equal(t, 1, set.Skipped())
	assert.Equal(t, 2, set.Len())

	ms := set.Apply("teh very big dog")
	require.Len(t, ms, 2)
	assert.Equal(t, "the", ms[0].Replacement)
	// No replacement given: the matched text stands in.
	assert.Equal(t, "very", ms[1].Replacement)
	assert.Equal(t, match.SourceUserRule, ms[1].Source)
}
