package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterTree(t *testing.T, max int) *Tree {
	t.Helper()
	return New(map[string]any{"counter": 0}, WithHistory(max))
}

func setCounter(tr *Tree, v int) {
	tr.Update(func(Snapshot) Snapshot { return Snapshot{"counter": v} })
}

func TestHistory_CounterScenario(t *testing.T) {
	tr := counterTree(t, 10)

	setCounter(tr, 1)
	setCounter(tr, 2)
	setCounter(tr, 3)
	require.Equal(t, 3, tr.Unwrap()["counter"])

	tr.Undo()
	assert.Equal(t, 2, tr.Unwrap()["counter"])
	tr.Undo()
	assert.Equal(t, 1, tr.Unwrap()["counter"])
	tr.Redo()
	assert.Equal(t, 2, tr.Unwrap()["counter"])
	tr.Redo()
	assert.Equal(t, 3, tr.Unwrap()["counter"])
}

func TestHistory_InverseLaw(t *testing.T) {
	tr := counterTree(t, 20)

	const n = 5
	for i := 1; i <= n; i++ {
		setCounter(tr, i*10)
	}

	for i := 0; i < n; i++ {
		tr.Undo()
	}
	assert.Equal(t, 0, tr.Unwrap()["counter"], "n undos return to INITIAL")

	for i := 0; i < n; i++ {
		tr.Redo()
	}
	assert.Equal(t, n*10, tr.Unwrap()["counter"], "n redos return to the final state")
}

func TestHistory_InitialSeededLazily(t *testing.T) {
	tr := counterTree(t, 10)

	assert.Empty(t, tr.GetHistory(), "no entries before the first mutation")

	setCounter(tr, 1)
	log := tr.GetHistory()
	require.Len(t, log, 2)
	assert.Equal(t, ActionInitial, log[0].Action)
	assert.Equal(t, Snapshot{"counter": 0}, log[0].Snapshot, "INITIAL captures the pre-mutation state")
	assert.Equal(t, ActionUpdate, log[1].Action)
	assert.Equal(t, Snapshot{"counter": 1}, log[1].Snapshot)
	assert.Equal(t, Snapshot{"counter": 1}, log[1].Payload)
}

func TestHistory_UndoRedoBoundaries(t *testing.T) {
	tr := counterTree(t, 10)

	tr.Undo() // empty log
	tr.Redo() // empty redo stack
	assert.Equal(t, 0, tr.Unwrap()["counter"])

	setCounter(tr, 1)
	tr.Undo()
	tr.Undo() // only INITIAL left
	assert.Equal(t, 0, tr.Unwrap()["counter"])
}

func TestHistory_Cap(t *testing.T) {
	tr := counterTree(t, 3)

	for i := 1; i <= 10; i++ {
		setCounter(tr, i)
	}

	log := tr.GetHistory()
	require.Len(t, log, 3, "log never exceeds maxEntries")
	assert.Equal(t, Snapshot{"counter": 8}, log[0].Snapshot, "retained entries are the most recent")
	assert.Equal(t, Snapshot{"counter": 10}, log[2].Snapshot)
}

func TestHistory_RedoClearedByForwardMutation(t *testing.T) {
	tr := counterTree(t, 10)

	setCounter(tr, 1)
	setCounter(tr, 2)
	tr.Undo()
	require.Equal(t, 1, tr.Unwrap()["counter"])

	setCounter(tr, 7)
	tr.Redo()
	assert.Equal(t, 7, tr.Unwrap()["counter"], "redo stack cleared by a new forward mutation")
}

func TestHistory_NavigationRunsOtherTaps(t *testing.T) {
	tr := counterTree(t, 10)

	var actions []string
	tr.AddTap(Tap{
		ID: "spy",
		After: func(action string, payload any, old, new Snapshot) {
			actions = append(actions, action)
		},
	})

	setCounter(tr, 1)
	tr.Undo()
	tr.Redo()

	assert.Equal(t, []string{ActionUpdate, ActionUndo, ActionRedo}, actions)

	log := tr.GetHistory()
	require.Len(t, log, 2, "navigation itself never records new entries")
}

func TestHistory_UndoRespectsVeto(t *testing.T) {
	tr := counterTree(t, 10)
	setCounter(tr, 1)

	tr.AddTap(Tap{
		ID: "freeze",
		Before: func(action string, payload any, current Snapshot) bool {
			return action != ActionUndo
		},
	})

	tr.Undo()
	assert.Equal(t, 1, tr.Unwrap()["counter"], "vetoed undo leaves state and log intact")
	assert.Len(t, tr.GetHistory(), 2)
}

func TestHistory_Reset(t *testing.T) {
	tr := counterTree(t, 10)

	setCounter(tr, 1)
	tr.Undo()
	tr.ResetHistory()
	assert.Empty(t, tr.GetHistory())

	tr.Redo() // redo stack was cleared too
	assert.Equal(t, 0, tr.Unwrap()["counter"])

	setCounter(tr, 5)
	log := tr.GetHistory()
	require.Len(t, log, 2)
	assert.Equal(t, ActionInitial, log[0].Action, "a fresh INITIAL is seeded after reset")
	assert.Equal(t, Snapshot{"counter": 0}, log[0].Snapshot)
}

func TestHistory_DisabledDegradesWithWarning(t *testing.T) {
	logger, buf := quietLogger()
	tr := New(map[string]any{"a": 1}, WithLogger(logger))

	tr.Undo()
	tr.Redo()
	assert.Nil(t, tr.GetHistory())
	tr.ResetHistory()

	assert.Equal(t, 1, tr.Unwrap()["a"])
	assert.Contains(t, buf.String(), "time travel not enabled")
}

func TestHistory_MetricsEntryCount(t *testing.T) {
	tr := counterTree(t, 10)
	setCounter(tr, 1)
	setCounter(tr, 2)
	assert.Equal(t, 3, tr.GetMetrics().HistoryEntries)
}
