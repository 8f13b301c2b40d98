package signal

// runtime holds the process-wide tracking and batching state.
//
// Single-writer: these fields are touched only from the one logical thread
// of control described in the package documentation. The scheduler is the
// only concurrency-safe entry point and it serializes its flushes.
type runtime struct {
	observer   *Memo
	batchDepth int

	// Deferred watcher notification, recorded in first-change order.
	// pendingOld keeps the value before the first write in the batch so a
	// watcher sees one (first-old, last-new) pair per changed signal.
	pending    []*Signal
	pendingOld map[*Signal]any
}

var rt = runtime{
	pendingOld: make(map[*Signal]any),
}

// Batch runs fn with watcher delivery deferred. At the exit of the
// outermost batch, each signal written during the batch fires its watchers
// exactly once with the value before the batch and the value after it.
// Signals whose value round-tripped back (under their equality function)
// fire nothing.
//
// Memo invalidation is not deferred: staleness marks land immediately so a
// read inside the batch observes the in-progress state.
//
// Batches nest; only the outermost exit flushes.
func Batch(fn func()) {
	rt.batchDepth++
	defer func() {
		rt.batchDepth--
		if rt.batchDepth == 0 {
			rt.flushNotifications()
		}
	}()
	fn()
}

func (r *runtime) defer_(s *Signal, old any) {
	if _, seen := r.pendingOld[s]; seen {
		return
	}
	r.pendingOld[s] = old
	r.pending = append(r.pending, s)
}

func (r *runtime) flushNotifications() {
	pending := r.pending
	pendingOld := r.pendingOld
	r.pending = nil
	r.pendingOld = make(map[*Signal]any)

	for _, s := range pending {
		old := pendingOld[s]
		new := s.value
		if s.eq(old, new) {
			// Changed and changed back within the batch.
			continue
		}
		s.notify(old, new)
	}
}
