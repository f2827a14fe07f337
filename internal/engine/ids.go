package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces suggestion and group ids. It is injectable so tests
// can use a deterministic counter instead of random UUIDs.
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string { return uuid.NewString() }

// NewUUIDGenerator returns the production generator.
func NewUUIDGenerator() IDGenerator { return uuidGenerator{} }

// CounterGenerator hands out sequential ids with a fixed prefix.
type CounterGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewCounterGenerator creates a deterministic generator for tests.
func NewCounterGenerator(prefix string) *CounterGenerator {
	return &CounterGenerator{prefix: prefix}
}

// NewID returns the next sequential id.
func (g *CounterGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}
