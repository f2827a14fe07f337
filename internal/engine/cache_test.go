package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdeprey/slate-grammar-demo/internal/match"
)

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache(4)
	ms := []match.Match{{Start: 1, End: 4, Replacement: "they"}}
	c.Put("some block text", "Alice", ms)

	got, ok := c.Get("some block text", "Alice")
	require.True(t, ok)
	assert.Equal(t, ms, got)

	_, ok = c.Get("some block text", "Bob")
	assert.False(t, ok, "different anchor must miss")
	_, ok = c.Get("other text entirely", "Alice")
	assert.False(t, ok, "different text must miss")
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(2)
	c.Put("text one", "a", nil)
	c.Put("text two", "b", nil)
	// Touch "text one" so "text two" becomes the eviction victim.
	_, ok := c.Get("text one", "a")
	require.True(t, ok)

	c.Put("text three", "c", nil)
	assert.Equal(t, 2, c.Len())
	if _, ok := c.Get("text two", "b"); ok {
		t.Error("least recently used entry should have been evicted")
	}
	if _, ok := c.Get("text one", "a"); !ok {
		t.Error("recently used entry should survive")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache(4)
	c.Put("text", "a", nil)
	c.Invalidate()
	assert.Equal(t, 0, c.Len())
	if _, ok := c.Get("text", "a"); ok {
		t.Error("invalidated cache must not serve entries")
	}
}
