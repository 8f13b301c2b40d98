package tree

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tessera/internal/canon"
)

// historyTrace reduces a log to its deterministic parts (timestamps are
// wall-clock and excluded) and serializes it canonically.
func historyTrace(t *testing.T, entries []Entry) []byte {
	t.Helper()
	list := make([]any, len(entries))
	for i, e := range entries {
		list[i] = map[string]any{
			"action": e.Action,
			"state":  map[string]any(e.Snapshot),
		}
	}
	data, err := canon.Marshal(map[string]any{"entries": list})
	require.NoError(t, err)
	return append(data, '\n')
}

// Golden file comparison of a full mutate/navigate session. Regenerate
// with: go test ./tree -run TestHistory_GoldenTrace -update
func TestHistory_GoldenTrace(t *testing.T) {
	tr := New(map[string]any{
		"counter": 0,
		"user":    map[string]any{"name": "ada"},
	}, WithHistory(10))

	tr.Update(func(Snapshot) Snapshot { return Snapshot{"counter": 1} })
	tr.Update(func(Snapshot) Snapshot {
		return Snapshot{"user": map[string]any{"name": "grace"}}
	})
	tr.Update(func(Snapshot) Snapshot { return Snapshot{"counter": 2} })
	tr.Undo()

	g := goldie.New(t)
	g.Assert(t, "history_trace", historyTrace(t, tr.GetHistory()))
}
