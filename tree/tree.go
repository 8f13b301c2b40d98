package tree

import (
	"log/slog"
	"time"

	"github.com/roach88/tessera/signal"
)

// Tree is the facade over one reactive state tree. All per-instance state
// (the tap pipeline, the memoization cache, the history log, the metrics)
// lives directly on the Tree and dies with it; there are no global side
// tables keyed by tree identity.
type Tree struct {
	root *branchNode
	eq   signal.Equality
	log  *slog.Logger
	keys KeyGenerator

	taps []Tap

	// Optional subsystems; nil means the feature was not enabled at
	// construction and the corresponding calls degrade with a warning.
	sched   *signal.Scheduler
	history *history
	cache   *memoCache

	metrics metricsState
}

type config struct {
	eq         signal.Equality
	logger     *slog.Logger
	keys       KeyGenerator
	sched      *signal.Scheduler
	batching   bool
	historyMax int
	cacheMax   int
}

// Option configures tree construction.
type Option func(*config)

// WithEquality sets the equality function used to gate writes on every cell
// the builder creates. Cells passed in already-reactive keep their own
// equality. Default: signal.Strict.
func WithEquality(eq signal.Equality) Option {
	return func(c *config) {
		if eq != nil {
			c.eq = eq
		}
	}
}

// WithLogger sets the warning channel for configuration-misuse reports.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBatching enables BatchUpdate, deferring through the process-wide
// scheduler.
func WithBatching() Option {
	return func(c *config) {
		c.batching = true
	}
}

// WithScheduler enables BatchUpdate on a specific scheduler instance.
// Tests use this with a cooperative trigger for deterministic flushes.
func WithScheduler(s *signal.Scheduler) Option {
	return func(c *config) {
		c.batching = true
		c.sched = s
	}
}

// WithHistory enables time travel with a bounded log. maxEntries caps the
// log with ring semantics: oldest entries fall off the front.
func WithHistory(maxEntries int) Option {
	return func(c *config) {
		if maxEntries > 0 {
			c.historyMax = maxEntries
		}
	}
}

// WithMemoCache enables the keyed memoization cache. maxSize bounds the
// cache for Optimize; ClearCache ignores it.
func WithMemoCache(maxSize int) Option {
	return func(c *config) {
		if maxSize > 0 {
			c.cacheMax = maxSize
		}
	}
}

// WithKeys replaces the memo-key generator used when Memoize is called
// without a key. Default: UUIDv7 tokens.
func WithKeys(g KeyGenerator) Option {
	return func(c *config) {
		if g != nil {
			c.keys = g
		}
	}
}

// New builds a state tree from a nested plain record. The shape is fixed
// here: updates only ever set cell values, never add or remove keys.
func New(initial map[string]any, opts ...Option) *Tree {
	c := &config{
		eq:     signal.Strict,
		logger: slog.Default(),
		keys:   UUIDKeys{},
	}
	for _, opt := range opts {
		opt(c)
	}

	t := &Tree{
		root: buildBranch(initial, c.eq),
		eq:   c.eq,
		log:  c.logger,
		keys: c.keys,
	}

	if c.batching {
		t.sched = c.sched
		if t.sched == nil {
			t.sched = signal.Default()
		}
	}
	if c.historyMax > 0 {
		t.history = newHistory(t, c.historyMax)
		t.taps = append(t.taps, t.history.tap())
	}
	if c.cacheMax > 0 {
		t.cache = newMemoCache(c.cacheMax)
	}
	return t
}

// Update applies a structured partial update synchronously.
//
// The updater receives the current snapshot and returns a partial result;
// only cells whose key appears in the partial are written. Any tap's Before
// hook may veto, in which case no cell is written, no After hook runs, and
// the call returns silently.
func (t *Tree) Update(updater func(current Snapshot) Snapshot) {
	t.applyUpdate(ActionUpdate, updater)
}

// BatchUpdate defers the update through the scheduler: all updates issued
// in the same window run FIFO in one flush with a single external
// notification pass. Without batching enabled it degrades to an immediate
// Update and logs a warning.
func (t *Tree) BatchUpdate(updater func(current Snapshot) Snapshot) {
	if t.sched == nil {
		t.log.Warn("batching not enabled on this tree; applying update immediately",
			"op", "BatchUpdate")
		t.Update(updater)
		return
	}
	t.sched.Schedule(func() {
		t.applyUpdate(ActionUpdate, updater)
	})
}

// Flush synchronously drains the scheduler's current window. A no-op when
// batching is disabled or the window is empty.
func (t *Tree) Flush() {
	if t.sched != nil {
		t.sched.Flush()
	}
}

// Cell resolves a path to the reactive cell at that position. Reading and
// watching cells directly is supported; the tree retains ownership.
func (t *Tree) Cell(path ...string) (*signal.Signal, bool) {
	n := t.resolve(path)
	if n == nil {
		return nil, false
	}
	cell, ok := n.(*cellNode)
	if !ok {
		return nil, false
	}
	return cell.cell, true
}

func (t *Tree) resolve(path []string) node {
	var cur node = t.root
	for _, key := range path {
		branch, ok := cur.(*branchNode)
		if !ok {
			return nil
		}
		next, ok := branch.child(key)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// applyUpdate runs the full mutation pipeline for a forward update:
// snapshot, updater, before hooks, writes, after hooks. Fully synchronous.
func (t *Tree) applyUpdate(action string, updater func(Snapshot) Snapshot) {
	start := time.Now()

	old := t.Unwrap()
	partial := updater(old)
	if partial == nil {
		partial = Snapshot{}
	}

	for _, tp := range t.taps {
		if tp.Before != nil && !tp.Before(action, partial, old) {
			return
		}
	}

	t.applyPartial(t.root, map[string]any(partial))
	updated := t.Unwrap()

	for _, tp := range t.taps {
		if tp.After != nil {
			tp.After(action, partial, old, updated)
		}
	}

	t.metrics.recordUpdate(time.Since(start))
}

// applyDirect writes a full snapshot with action ("UNDO"/"REDO"), running
// every tap except skip around the write. History navigation uses this so
// its own recorder never observes the navigation as a fresh mutation.
// Returns false when a Before hook vetoed.
func (t *Tree) applyDirect(action string, target Snapshot, skip string) bool {
	old := t.Unwrap()

	for _, tp := range t.taps {
		if tp.ID == skip {
			continue
		}
		if tp.Before != nil && !tp.Before(action, target, old) {
			return false
		}
	}

	t.applyPartial(t.root, map[string]any(target))
	updated := t.Unwrap()

	for _, tp := range t.taps {
		if tp.ID == skip {
			continue
		}
		if tp.After != nil {
			tp.After(action, target, old, updated)
		}
	}
	return true
}
