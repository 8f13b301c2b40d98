// Package signal implements the reactive runtime underneath the tessera
// state tree: observable value cells, dependency-tracked derived cells,
// coalesced change notification, and the deferred-flush scheduler.
//
// # Core Types
//
// Signal is a single observable, settable value:
//
//	count := signal.New(0)
//	v := count.Get()   // read (subscribes the tracking derived cell, if any)
//	count.Set(5)       // write (equality-gated, notifies watchers)
//
// Memo is a cached derived computation. It records exactly which signals it
// read during its last run and recomputes lazily only after one of those
// signals changes value:
//
//	doubled := signal.NewMemo(func() any { return count.Get().(int) * 2 })
//	doubled.Get() // computes
//	doubled.Get() // cached, no recompute
//
// # Batching
//
// Batch defers watcher delivery so that many writes produce a single
// externally observable notification pass:
//
//	signal.Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	})  // watchers fire once, at batch exit
//
// The Scheduler generalizes this to a process-wide deferred-task queue with
// swap-on-flush semantics: jobs scheduled in the same window run FIFO in one
// flush, wrapped in a single Batch; jobs scheduled during a flush start the
// next window.
//
// # Single-Writer Model
//
// The runtime processes all reads and writes on one logical thread of
// control, like the single-writer event loop it descends from. Dependency
// tracking state is process-wide and unsynchronized on the hot path:
//
//   - Get/Set/Watch and Memo.Get: call from exactly one goroutine at a time
//   - Scheduler.Schedule and Scheduler.Flush: safe from any goroutine
//
// "Concurrency" here means interleaving of synchronous calls with deferred
// flush callbacks, never parallel mutation.
package signal
