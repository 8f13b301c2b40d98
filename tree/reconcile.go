package tree

// Unwrap materializes the current state as a plain snapshot. Pure and
// side-effect free: reads use Peek, so unwrapping never subscribes a
// derived cell to anything.
func (t *Tree) Unwrap() Snapshot {
	return t.unwrapBranch(t.root)
}

func (t *Tree) unwrapBranch(b *branchNode) Snapshot {
	out := make(Snapshot, len(b.keys))
	for _, key := range b.keys {
		switch n := b.children[key].(type) {
		case *cellNode:
			out[key] = n.cell.Peek()
		case *branchNode:
			out[key] = map[string]any(t.unwrapBranch(n))
		}
	}
	return out
}

// applyPartial walks a partial result against the tree and writes only the
// cells the partial names.
//
//   - key resolves to a cell: overwrite its value; the cell's own equality
//     gate decides whether anything observable happens
//   - key resolves to a branch and the value is itself a record: recurse,
//     so a nested partial need only mention the changed leaves
//   - key has no node, or a branch is assigned a non-record: ignored
//
// Untouched sibling cells are never written, preserving minimal
// invalidation.
func (t *Tree) applyPartial(b *branchNode, partial map[string]any) {
	for key, value := range partial {
		child, ok := b.child(key)
		if !ok {
			continue
		}
		switch n := child.(type) {
		case *cellNode:
			n.cell.Set(value)
		case *branchNode:
			if rec, ok := asRecord(value); ok {
				t.applyPartial(n, rec)
			}
		}
	}
}
