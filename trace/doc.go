// Package trace is the debugging bridge for tessera state trees: a
// SQLite-backed, append-only log of accepted mutations, driven purely by
// the tree's after-hook snapshots.
//
// The recorder is an ordinary tap. Every committed mutation (UPDATE, UNDO
// and REDO alike) lands as one row holding the action, the proposed
// payload, and the old/new snapshots in canonical JSON, stamped with a
// monotonic logical sequence number. Wall-clock timestamps are stored for
// display only and are NEVER used for ordering.
//
// The core state tree stays persistence-free; everything durable lives
// here, on the collaborator side of the tap pipeline.
package trace
