// Package entity layers CRUD helpers over one array-valued cell of a
// tessera state tree.
//
// A Collection owns no state: every write goes through tree.Update, so
// taps, history, and metrics observe entity operations exactly like any
// other mutation. Items are plain records identified by a configurable id
// key.
package entity

import (
	"fmt"

	"github.com/roach88/tessera/tree"
)

// Collection binds CRUD operations to the array-valued cell at one tree
// path.
type Collection struct {
	t     *tree.Tree
	path  []string
	idKey string
}

// Bind attaches a collection to the cell at path. The cell must exist; its
// value is expected to be a []any of record items. The default id key is
// "id".
func Bind(t *tree.Tree, path ...string) (*Collection, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("entity: empty path")
	}
	if _, ok := t.Cell(path...); !ok {
		return nil, fmt.Errorf("entity: no cell at path %v", path)
	}
	return &Collection{t: t, path: path, idKey: "id"}, nil
}

// WithIDKey changes the field used as item identity and returns the
// collection for chaining.
func (c *Collection) WithIDKey(key string) *Collection {
	if key != "" {
		c.idKey = key
	}
	return c
}

// Items returns the current item records. Non-record elements are skipped.
func (c *Collection) Items() []map[string]any {
	cell, ok := c.t.Cell(c.path...)
	if !ok {
		return nil
	}
	raw, _ := cell.Peek().([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, elem := range raw {
		if item, ok := elem.(map[string]any); ok {
			out = append(out, item)
		}
	}
	return out
}

// Len returns the number of elements in the underlying array.
func (c *Collection) Len() int {
	cell, ok := c.t.Cell(c.path...)
	if !ok {
		return 0
	}
	raw, _ := cell.Peek().([]any)
	return len(raw)
}

// Find returns the first item whose id field equals id.
func (c *Collection) Find(id any) (map[string]any, bool) {
	for _, item := range c.Items() {
		if item[c.idKey] == id {
			return item, true
		}
	}
	return nil, false
}

// Add appends an item.
func (c *Collection) Add(item map[string]any) {
	c.write(func(cur []any) []any {
		return append(cur, item)
	})
}

// Update merges patch into the item with the given id. Items without a
// matching id are untouched; a missing id is a no-op.
func (c *Collection) Update(id any, patch map[string]any) {
	c.write(func(cur []any) []any {
		next := make([]any, len(cur))
		for i, elem := range cur {
			item, ok := elem.(map[string]any)
			if !ok || item[c.idKey] != id {
				next[i] = elem
				continue
			}
			merged := make(map[string]any, len(item)+len(patch))
			for k, v := range item {
				merged[k] = v
			}
			for k, v := range patch {
				merged[k] = v
			}
			next[i] = merged
		}
		return next
	})
}

// Remove deletes every item whose id field equals id.
func (c *Collection) Remove(id any) {
	c.write(func(cur []any) []any {
		next := make([]any, 0, len(cur))
		for _, elem := range cur {
			if item, ok := elem.(map[string]any); ok && item[c.idKey] == id {
				continue
			}
			next = append(next, elem)
		}
		return next
	})
}

// Upsert updates the item matching item's id, or appends it when absent.
func (c *Collection) Upsert(item map[string]any) {
	if _, exists := c.Find(item[c.idKey]); exists {
		c.Update(item[c.idKey], item)
		return
	}
	c.Add(item)
}

// write routes an array transformation through the tree's update pipeline.
// The whole array is assigned as one leaf value; arrays are never diffed
// element-wise.
func (c *Collection) write(fn func(cur []any) []any) {
	c.t.Update(func(current tree.Snapshot) tree.Snapshot {
		cell, ok := c.t.Cell(c.path...)
		if !ok {
			return nil
		}
		cur, _ := cell.Peek().([]any)
		return c.partial(fn(cur))
	})
}

// partial wraps the new array in the nested record shape of the bind path,
// so only the bound cell is written.
func (c *Collection) partial(items []any) tree.Snapshot {
	value := any(items)
	for i := len(c.path) - 1; i >= 1; i-- {
		value = map[string]any{c.path[i]: value}
	}
	return tree.Snapshot{c.path[0]: value}
}
