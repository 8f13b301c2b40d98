package testutil

import "github.com/roach88/tessera/tree"

// Call is one recorded hook invocation.
type Call struct {
	Hook    string // "before" or "after"
	Action  string
	Payload any
	Old     tree.Snapshot
	New     tree.Snapshot
}

// RecordingTap captures every hook invocation for pipeline assertions.
// Veto, when set, makes every Before hook reject.
type RecordingTap struct {
	ID    string
	Veto  bool
	Calls []Call
}

// Tap builds the tree.Tap wired to this recorder.
func (r *RecordingTap) Tap() tree.Tap {
	return tree.Tap{
		ID: r.ID,
		Before: func(action string, payload any, current tree.Snapshot) bool {
			r.Calls = append(r.Calls, Call{
				Hook:    "before",
				Action:  action,
				Payload: payload,
				Old:     current,
			})
			return !r.Veto
		},
		After: func(action string, payload any, old, new tree.Snapshot) {
			r.Calls = append(r.Calls, Call{
				Hook:    "after",
				Action:  action,
				Payload: payload,
				Old:     old,
				New:     new,
			})
		},
	}
}

// Actions returns the recorded actions for one hook kind, in order.
func (r *RecordingTap) Actions(hook string) []string {
	var out []string
	for _, c := range r.Calls {
		if c.Hook == hook {
			out = append(out, c.Action)
		}
	}
	return out
}
