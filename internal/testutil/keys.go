// Package testutil provides deterministic helpers for tessera tests:
// predictable memo-key generators and recording taps for pipeline
// assertions.
package testutil

import "sync"

// FixedKeys returns predetermined memo keys in order.
//
// This enables deterministic cache contents and golden comparison: the same
// test with the same FixedKeys produces identical cache keys.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedKeys struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedKeys creates a generator that returns tokens in order.
//
// Panics when all tokens are consumed - a fail-fast guard against test
// misconfiguration (the test minted more keyless memos than expected).
func NewFixedKeys(tokens ...string) *FixedKeys {
	return &FixedKeys{tokens: tokens}
}

// Generate returns the next predetermined token.
// Implements tree.KeyGenerator.
func (g *FixedKeys) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("FixedKeys: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}

// ConstantKeys always returns the same token, collapsing every keyless
// Memoize call onto one cache entry.
//
// Thread-safety: stateless and safe for concurrent use.
type ConstantKeys struct {
	Token string
}

// Generate returns the fixed token.
// Implements tree.KeyGenerator.
func (g ConstantKeys) Generate() string {
	if g.Token == "" {
		return "test-key-default"
	}
	return g.Token
}
