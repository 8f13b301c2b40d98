package tree

import "time"

// historyTapID names the built-in recorder in the pipeline.
const historyTapID = "tessera.history"

// Entry is one recorded state in the time-travel log.
type Entry struct {
	Snapshot Snapshot
	At       time.Time
	Action   string
	Payload  any
}

// history is the time-travel recorder, driven by the tap pipeline.
//
// INVARIANTS:
//   - log length never exceeds max; oldest entries are discarded first
//   - redo holds only entries popped by Undo and is cleared by any accepted
//     forward mutation
//   - the first entry is synthesized lazily on the first UPDATE and
//     captures the pre-mutation snapshot as INITIAL
type history struct {
	t    *Tree
	max  int
	log  []Entry
	redo []Entry
}

func newHistory(t *Tree, max int) *history {
	return &history{t: t, max: max}
}

// tap exposes the recorder as a pipeline interceptor. Before never vetoes.
// Navigation actions bypass this tap entirely (applyDirect skips it), so
// undo never records itself as new history.
func (h *history) tap() Tap {
	return Tap{
		ID: historyTapID,
		Before: func(action string, payload any, current Snapshot) bool {
			if action == ActionUpdate && len(h.log) == 0 {
				h.log = append(h.log, Entry{
					Snapshot: current,
					At:       time.Now(),
					Action:   ActionInitial,
				})
			}
			return true
		},
		After: func(action string, payload any, old, new Snapshot) {
			if action != ActionUpdate {
				return
			}
			h.log = append(h.log, Entry{
				Snapshot: new,
				At:       time.Now(),
				Action:   action,
				Payload:  payload,
			})
			if len(h.log) > h.max {
				h.log = h.log[len(h.log)-h.max:]
			}
			h.redo = nil
		},
	}
}

func (h *history) undo() {
	if len(h.log) <= 1 {
		// Nothing before INITIAL.
		return
	}
	target := h.log[len(h.log)-2]
	if !h.t.applyDirect(ActionUndo, target.Snapshot, historyTapID) {
		return
	}
	cur := h.log[len(h.log)-1]
	h.log = h.log[:len(h.log)-1]
	h.redo = append(h.redo, cur)
}

func (h *history) redoOne() {
	if len(h.redo) == 0 {
		return
	}
	entry := h.redo[len(h.redo)-1]
	if !h.t.applyDirect(ActionRedo, entry.Snapshot, historyTapID) {
		return
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.log = append(h.log, entry)
}

// Undo steps back one accepted mutation. A no-op when the log holds at most
// the INITIAL entry, or when time travel was not enabled (warned).
func (t *Tree) Undo() {
	if t.history == nil {
		t.log.Warn("time travel not enabled on this tree", "op", "Undo")
		return
	}
	t.history.undo()
}

// Redo re-applies the most recently undone mutation. A no-op when the redo
// stack is empty, or when time travel was not enabled (warned).
func (t *Tree) Redo() {
	if t.history == nil {
		t.log.Warn("time travel not enabled on this tree", "op", "Redo")
		return
	}
	t.history.redoOne()
}

// GetHistory returns a copy of the entry log, oldest first.
func (t *Tree) GetHistory() []Entry {
	if t.history == nil {
		t.log.Warn("time travel not enabled on this tree", "op", "GetHistory")
		return nil
	}
	out := make([]Entry, len(t.history.log))
	copy(out, t.history.log)
	return out
}

// ResetHistory clears the log and the redo stack. The next UPDATE seeds a
// fresh INITIAL entry.
func (t *Tree) ResetHistory() {
	if t.history == nil {
		t.log.Warn("time travel not enabled on this tree", "op", "ResetHistory")
		return
	}
	t.history.log = nil
	t.history.redo = nil
}
