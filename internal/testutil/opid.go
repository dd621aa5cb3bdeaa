package testutil

import (
	"fmt"
	"sync"
)

// FixedOpIDGenerator returns the same operation id every time, so log output
// of a transaction is reproducible.
//
// Thread-safety: FixedOpIDGenerator is stateless and safe for concurrent use.
type FixedOpIDGenerator struct {
	id string
}

// NewFixedOpIDGenerator creates a generator for id. An empty id yields
// "test-op".
func NewFixedOpIDGenerator(id string) *FixedOpIDGenerator {
	if id == "" {
		id = "test-op"
	}
	return &FixedOpIDGenerator{id: id}
}

// Generate returns the fixed id.
func (g *FixedOpIDGenerator) Generate() string {
	return g.id
}

// SequentialOpIDGenerator returns "<prefix>-1", "<prefix>-2", ... and can be
// reset for test reuse.
//
// Thread-safety: all methods are safe for concurrent use.
type SequentialOpIDGenerator struct {
	mu     sync.Mutex
	prefix string
	seq    int64
}

// NewSequentialOpIDGenerator creates a generator whose first id is
// "<prefix>-1".
func NewSequentialOpIDGenerator(prefix string) *SequentialOpIDGenerator {
	return &SequentialOpIDGenerator{prefix: prefix}
}

// Generate increments the counter and returns the next id.
func (g *SequentialOpIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%d", g.prefix, g.seq)
}

// Issued returns how many ids have been handed out.
func (g *SequentialOpIDGenerator) Issued() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

// Reset starts the sequence over at 1.
func (g *SequentialOpIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
