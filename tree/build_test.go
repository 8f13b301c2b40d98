package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tessera/signal"
)

func TestBuild_ShapeInvariant(t *testing.T) {
	tests := []struct {
		name  string
		state map[string]any
	}{
		{"flat primitives", map[string]any{"a": 1, "b": "x", "c": true}},
		{"nil leaf", map[string]any{"a": nil}},
		{"array leaf", map[string]any{"items": []any{1, 2, 3}}},
		{"nested records", map[string]any{
			"user": map[string]any{
				"name":    "ada",
				"profile": map[string]any{"age": 36},
			},
			"count": 0,
		}},
		{"empty record branch", map[string]any{"meta": map[string]any{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(tt.state)
			assert.Equal(t, Snapshot(tt.state), tr.Unwrap(), "unwrap(build(x)) must deep-equal x")
		})
	}
}

func TestBuild_PreservesExistingCells(t *testing.T) {
	cell := signal.New(42, signal.WithEquality(signal.Never))
	tr := New(map[string]any{"answer": cell})

	got, ok := tr.Cell("answer")
	require.True(t, ok)
	assert.Same(t, cell, got, "already-reactive values are kept by reference")
	assert.Equal(t, 42, tr.Unwrap()["answer"])
}

func TestBuild_ArraysAreLeaves(t *testing.T) {
	tr := New(map[string]any{"rows": []any{map[string]any{"id": 1}}})

	_, ok := tr.Cell("rows")
	assert.True(t, ok, "arrays wrap in one cell, never a branch")

	_, ok = tr.Cell("rows", "0")
	assert.False(t, ok)
}

func TestTree_CellResolution(t *testing.T) {
	tr := New(map[string]any{
		"user": map[string]any{"name": "ada"},
	})

	_, ok := tr.Cell("user", "name")
	assert.True(t, ok)

	_, ok = tr.Cell("user")
	assert.False(t, ok, "branches are not cells")

	_, ok = tr.Cell("missing")
	assert.False(t, ok)

	_, ok = tr.Cell("user", "name", "deeper")
	assert.False(t, ok, "paths through cells do not resolve")
}
