package engine

import (
	"container/list"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/rdeprey/slate-grammar-demo/internal/match"
)

// cachePrefixLen is how much of the block text participates in the cache key.
// The key is cheap to compute: length plus a short prefix plus the anchor
// literal, not a full content address.
const cachePrefixLen = 32

// DefaultCacheCapacity bounds the AI result cache when the host does not
// choose a capacity.
const DefaultCacheCapacity = 64

// Cache memoizes AI-derived match batches by (text length, text prefix,
// anchor literal). It is bounded with LRU eviction and must be invalidated
// explicitly when the document closes.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recent
}

type cacheEntry struct {
	key     string
	matches []match.Match
}

// NewCache creates a cache holding at most capacity batches.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

func cacheKey(text, anchor string) string {
	prefix := text
	if len(prefix) > cachePrefixLen {
		prefix = prefix[:cachePrefixLen]
	}
	h := blake3.New()
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(text)))
	h.Write(lenBuf[:])
	h.Write([]byte(prefix))
	h.Write([]byte{0})
	h.Write([]byte(anchor))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Get returns the memoized batch for (text, anchor), marking it most
// recently used.
func (c *Cache) Get(text, anchor string) ([]match.Match, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[cacheKey(text, anchor)]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).matches, true
}

// Put memoizes a batch, evicting the least recently used entry when full.
func (c *Cache) Put(text, anchor string, ms []match.Match) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(text, anchor)
	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).matches = ms
		c.order.MoveToFront(el)
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, matches: ms})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Invalidate drops every entry. Hosts call this on document close.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Len reports how many batches are cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
