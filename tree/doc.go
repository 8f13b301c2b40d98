// Package tree implements the tessera hierarchical reactive state
// container: an isomorphic tree of signal cells built from a nested plain
// record, with structured partial updates, deferred batching, a before/after
// interception pipeline, bounded time-travel history, and a keyed
// memoization cache for derived values.
//
// ARCHITECTURE:
//
// Tagged node tree:
// The shape of the tree is fixed at construction. Each node is decided once
// to be a cell (primitives, arrays, nil, already-reactive values) or a
// branch (plain nested records); Update and Unwrap never re-inspect value
// kinds at runtime.
//
// Mutation pipeline, per Update:
//  1. Unwrap the current snapshot
//  2. Run the updater to obtain a partial result
//  3. Run every tap's Before hook in registration order; any false vetoes
//     the mutation with no writes and no notification
//  4. Write only the cells named by the partial result
//  5. Unwrap the new snapshot, run every tap's After hook in the same order
//
// The whole sequence is synchronous: two taps never observe interleaved
// partial writes from different mutations.
//
// History rides the pipeline as a built-in tap; Undo/Redo write snapshots
// directly through the reconciler with actions "UNDO"/"REDO", running every
// other tap around the direct write so the recorder never re-records its
// own navigation.
//
// FAILURE MODEL:
//
// The tree never returns errors for normal usage. A vetoed update and an
// impossible undo/redo are silent no-ops; calling a feature that was not
// enabled at construction logs one warning and degrades to the nearest safe
// fallback (BatchUpdate applies immediately, Memoize computes uncached,
// Undo does nothing).
package tree
