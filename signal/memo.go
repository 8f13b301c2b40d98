package signal

// Memo is a cached derived computation over one or more signals.
//
// Invalidation is push-marked, pull-computed: a committed write to any
// signal the memo read during its last run marks the memo stale; the next
// Get recomputes and rebuilds the dependency set from whatever the
// computation actually reads this time. Reads of signals the memo did not
// touch never invalidate it.
//
// Memos track signal reads only. A memo computation that calls another
// memo's Get does not become dependent on it; compose over signals instead.
type Memo struct {
	fn    func() any
	value any
	stale bool
	deps  map[*Signal]struct{}
}

// NewMemo creates a derived cell. The computation does not run until the
// first Get.
func NewMemo(fn func() any) *Memo {
	return &Memo{
		fn:    fn,
		stale: true,
		deps:  make(map[*Signal]struct{}),
	}
}

// Get returns the derived value, recomputing only when a dependency changed
// since the last run (or on first read).
func (m *Memo) Get() any {
	if m.stale {
		m.recompute()
	}
	return m.value
}

// Stale reports whether the next Get will recompute.
func (m *Memo) Stale() bool {
	return m.stale
}

func (m *Memo) recompute() {
	// Unsubscribe from the previous run's dependency set. The new set is
	// rebuilt from the reads the computation performs this run, so a
	// branch no longer read stops invalidating the memo.
	for d := range m.deps {
		d.drop(m)
	}
	m.deps = make(map[*Signal]struct{})

	prev := rt.observer
	rt.observer = m
	defer func() {
		rt.observer = prev
	}()

	m.value = m.fn()
	m.stale = false
}
