package tree

import "github.com/roach88/tessera/signal"

// View is the tracked read surface handed to memoized computations.
//
// Reading through a View while the memo computes records exactly the cells
// the computation touched, so the derived value goes stale only when one of
// those cells changes, never on writes to independent branches.
type View struct {
	t *Tree
}

// Get resolves a path and returns its current value, registering the read
// with the computing memo. A cell path tracks that one cell; a branch path
// materializes the branch and tracks every cell under it; no path at all
// materializes the whole tree. Unknown paths return nil.
func (v View) Get(path ...string) any {
	n := v.t.resolve(path)
	if n == nil {
		return nil
	}
	return trackedValue(n)
}

func trackedValue(n node) any {
	switch n := n.(type) {
	case *cellNode:
		return n.cell.Get()
	case *branchNode:
		out := make(map[string]any, len(n.keys))
		for _, key := range n.keys {
			out[key] = trackedValue(n.children[key])
		}
		return out
	}
	return nil
}

// memoCache is the per-tree keyed store of derived cells.
type memoCache struct {
	max     int
	entries map[string]*signal.Memo
}

func newMemoCache(max int) *memoCache {
	return &memoCache{max: max, entries: make(map[string]*signal.Memo)}
}

// Memoize returns the derived cell for key, creating it on first use.
//
// A hit returns the existing cell without re-invoking fn; the cell's own
// dependency tracking drives recomputation from then on. Omitting the key
// mints a fresh token per call, which defeats caching across calls: an
// escape hatch for one-off derivations, at the cost of one cache entry per
// call until Optimize or ClearCache runs.
//
// Without a memo cache enabled the call degrades to an uncached derived
// cell and logs a warning.
func (t *Tree) Memoize(fn func(View) any, key ...string) *signal.Memo {
	compute := func() any {
		t.metrics.computations++
		return fn(View{t: t})
	}

	if t.cache == nil {
		t.log.Warn("memoization cache not enabled on this tree; derived value is uncached",
			"op", "Memoize")
		return signal.NewMemo(compute)
	}

	k := ""
	if len(key) > 0 {
		k = key[0]
	}
	if k == "" {
		k = t.keys.Generate()
	}

	if m, ok := t.cache.entries[k]; ok {
		t.metrics.cacheHits++
		return m
	}
	t.metrics.cacheMisses++
	m := signal.NewMemo(compute)
	t.cache.entries[k] = m
	return m
}

// Optimize clears the cache only when it exceeds its configured maximum
// size. Never automatic; callers decide when to shed derived cells.
func (t *Tree) Optimize() {
	if t.cache == nil {
		t.log.Warn("memoization cache not enabled on this tree", "op", "Optimize")
		return
	}
	if len(t.cache.entries) > t.cache.max {
		t.cache.entries = make(map[string]*signal.Memo)
	}
}

// ClearCache unconditionally drops every cached derived cell.
func (t *Tree) ClearCache() {
	if t.cache == nil {
		t.log.Warn("memoization cache not enabled on this tree", "op", "ClearCache")
		return
	}
	t.cache.entries = make(map[string]*signal.Memo)
}

// CacheSize reports the number of live derived cells.
func (t *Tree) CacheSize() int {
	if t.cache == nil {
		return 0
	}
	return len(t.cache.entries)
}
