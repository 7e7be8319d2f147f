package testutil

import (
	"fmt"
	"sync"
)

// SequenceGenerator returns deterministic run ids: "<prefix>-0001",
// "<prefix>-0002", ...
//
// This enables deterministic history rows and golden output. It implements
// store.IDGenerator.
//
// Thread-safety: SequenceGenerator is safe for concurrent use via internal mutex.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequenceGenerator creates a generator. An empty prefix defaults to "run".
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	if prefix == "" {
		prefix = "run"
	}
	return &SequenceGenerator{prefix: prefix, next: 1}
}

// Generate returns the next id in the sequence.
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := fmt.Sprintf("%s-%04d", g.prefix, g.next)
	g.next++
	return id
}

// Reset restarts the sequence at 1.
func (g *SequenceGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next = 1
}
