package tree

// Actions used by the mutation pipeline. History's seed entry uses
// ActionInitial; navigation uses ActionUndo/ActionRedo so taps can
// special-case them.
const (
	ActionUpdate  = "UPDATE"
	ActionUndo    = "UNDO"
	ActionRedo    = "REDO"
	ActionInitial = "INITIAL"
)

// Tap is a named before/after hook pair wrapped around every mutation.
//
// Before runs against the proposed payload and the pre-mutation snapshot;
// returning false vetoes the mutation. After observes the committed
// old/new snapshot pair. Either hook may be nil.
type Tap struct {
	ID     string
	Before func(action string, payload any, current Snapshot) bool
	After  func(action string, payload any, old, new Snapshot)
}

// AddTap registers a tap at the end of the pipeline. Re-adding an existing
// ID replaces that entry in place, keeping its original position; a tap is
// never invoked twice per mutation.
func (t *Tree) AddTap(tap Tap) {
	for i, existing := range t.taps {
		if existing.ID == tap.ID {
			t.taps[i] = tap
			return
		}
	}
	t.taps = append(t.taps, tap)
}

// RemoveTap removes the tap with the given ID. Removing an unknown ID is a
// no-op.
func (t *Tree) RemoveTap(id string) {
	for i, existing := range t.taps {
		if existing.ID == id {
			t.taps = append(t.taps[:i], t.taps[i+1:]...)
			return
		}
	}
}

// Taps returns the registered tap IDs in pipeline order.
func (t *Tree) Taps() []string {
	ids := make([]string, len(t.taps))
	for i, tp := range t.taps {
		ids[i] = tp.ID
	}
	return ids
}
