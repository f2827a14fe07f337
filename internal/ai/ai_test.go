package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdeprey/slate-grammar-demo/internal/pov"
)

// scriptedClient returns canned responses in order.
type scriptedClient struct {
	responses []string
	err       error
	calls     int
}

func (s *scriptedClient) Complete(ctx context.Context, prompt string) (string, error) {
	return s.CompleteWithSystem(ctx, "", prompt)
}

func (s *scriptedClient) CompleteWithSystem(ctx context.Context, _, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	i := s.calls
	s.calls++
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

func TestScanJSONValues(t *testing.T) {
	in := "Sure! Here you go:\n```json\n[{\"offset\":1}]\n```\nand {\"a\":\"b}\"} too"
	got := scanJSONValues(in)
	require.Len(t, got, 2)
	assert.Equal(t, `[{"offset":1}]`, got[0])
	assert.Equal(t, `{"a":"b}"}`, got[1])
}

func TestInferCategory(t *testing.T) {
	c := &scriptedClient{responses: []string{"she"}}
	cat, ok := InferCategory(context.Background(), c, "Alice went home.", "Alice", nil)
	require.True(t, ok)
	assert.Equal(t, pov.Feminine, cat)
}

func TestInferCategoryUnknown(t *testing.T) {
	c := &scriptedClient{responses: []string{"unknown"}}
	_, ok := InferCategory(context.Background(), c, "text", "rock", nil)
	assert.False(t, ok)
}

func TestInferCategoryGarbage(t *testing.T) {
	c := &scriptedClient{responses: []string{"I think it might be a dog?"}}
	_, ok := InferCategory(context.Background(), c, "text", "Rex", nil)
	assert.False(t, ok)
}

func TestInferCategoryError(t *testing.T) {
	c := &scriptedClient{err: errors.New("network down")}
	_, ok := InferCategory(context.Background(), c, "text", "Alice", nil)
	assert.False(t, ok)
}

func TestAlignPronouns(t *testing.T) {
	text := "Alice said she would bring her notes."
	c := &scriptedClient{responses: []string{
		`Here are the alignments:
		[{"offset":11,"length":3,"original":"she","replacement":"they"},
		 {"offset":27,"length":3,"original":"her","replacement":"their"}]`,
	}}
	ms, err := AlignPronouns(context.Background(), c, text, "Alice", pov.Neutral, nil)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, "they", ms[0].Replacement)
	assert.Equal(t, "she", text[ms[0].Start:ms[0].End])
	assert.Equal(t, "their", ms[1].Replacement)
}

func TestAlignPronounsDropsMisaligned(t *testing.T) {
	text := "Alice said she would."
	c := &scriptedClient{responses: []string{
		`[{"offset":0,"length":3,"original":"she","replacement":"they"},
		  {"offset":11,"length":3,"original":"she","replacement":"they"}]`,
	}}
	ms, err := AlignPronouns(context.Background(), c, text, "Alice", pov.Neutral, nil)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, 11, ms[0].Start)
}

func TestAlignPronounsUnparseable(t *testing.T) {
	c := &scriptedClient{responses: []string{"I could not find any pronouns."}}
	_, err := AlignPronouns(context.Background(), c, "text", "Alice", pov.Neutral, nil)
	assert.Error(t, err)
}
