package tree

import (
	"sort"

	"github.com/roach88/tessera/signal"
)

// Snapshot is a plain, non-reactive materialization of a state tree at one
// instant. Snapshots are values: once taken they never update.
type Snapshot map[string]any

// buildNode recursively classifies one input value.
//
// Classification rules, in order:
//   - an existing *signal.Signal is kept by reference, unchanged: no
//     re-wrapping, no equality override
//   - a plain record (map) recurses into a branch
//   - everything else (primitives, arrays, nil, functions) becomes one new
//     cell with the tree's equality function
//
// Building is total: any JSON-like input produces a tree without error.
// Cyclic object graphs are unsupported and will not terminate.
func buildNode(value any, eq signal.Equality) node {
	if cell, ok := value.(*signal.Signal); ok {
		return &cellNode{cell: cell}
	}
	if rec, ok := asRecord(value); ok {
		return buildBranch(rec, eq)
	}
	return &cellNode{cell: signal.New(value, signal.WithEquality(eq))}
}

func buildBranch(rec map[string]any, eq signal.Equality) *branchNode {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	children := make(map[string]node, len(rec))
	for _, k := range keys {
		children[k] = buildNode(rec[k], eq)
	}
	return &branchNode{keys: keys, children: children}
}

// asRecord normalizes the two spellings of a plain record. Arrays and nil
// are not records; they are leaf values.
func asRecord(v any) (map[string]any, bool) {
	switch rec := v.(type) {
	case Snapshot:
		return map[string]any(rec), true
	case map[string]any:
		return rec, true
	default:
		return nil, false
	}
}
