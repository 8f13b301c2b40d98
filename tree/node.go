package tree

import "github.com/roach88/tessera/signal"

// nodeKind tags a tree node. The kind is decided once, at construction,
// from the shape of the initial state.
type nodeKind int

const (
	kindCell nodeKind = iota + 1
	kindBranch
)

// node is either a cell holding one signal or a branch holding named
// children. The sum is closed; only cellNode and branchNode implement it.
type node interface {
	kind() nodeKind
}

// cellNode wraps one reactive cell. Arrays, primitives, nil, and values
// that were already signals all live in cells; arrays are leaf values and
// are never diffed element-wise.
type cellNode struct {
	cell *signal.Signal
}

func (*cellNode) kind() nodeKind { return kindCell }

// branchNode is an internal record node. keys holds the child names in
// sorted order so every walk is deterministic.
type branchNode struct {
	keys     []string
	children map[string]node
}

func (*branchNode) kind() nodeKind { return kindBranch }

func (b *branchNode) child(key string) (node, bool) {
	n, ok := b.children[key]
	return n, ok
}
