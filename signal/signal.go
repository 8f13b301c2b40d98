package signal

// Watcher observes committed value changes on a single signal.
// Watchers never fire for writes gated out by the equality function.
type Watcher func(old, new any)

// Signal is a single mutable reactive value.
//
// Reads performed while a Memo is computing register a dependency edge from
// this signal to that memo; subsequent committed writes mark exactly those
// memos stale. Watchers are notified immediately outside a batch and once
// per changed signal at batch exit inside one.
//
// INVARIANTS:
//   - version strictly increases on every committed write
//   - subs holds exactly the memos that read this signal in their last run
type Signal struct {
	value   any
	eq      Equality
	version uint64

	subs     map[*Memo]struct{}
	watchers []watcherEntry
	nextID   int
}

type watcherEntry struct {
	id int
	fn Watcher
}

// Option configures a new signal.
type Option func(*Signal)

// WithEquality overrides the signal's equality function.
func WithEquality(eq Equality) Option {
	return func(s *Signal) {
		if eq != nil {
			s.eq = eq
		}
	}
}

// New creates a signal holding the initial value. The default equality is
// Strict.
func New(initial any, opts ...Option) *Signal {
	s := &Signal{
		value: initial,
		eq:    Strict,
		subs:  make(map[*Memo]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the current value and, when a memo is computing, records the
// dependency edge.
func (s *Signal) Get() any {
	if rt.observer != nil {
		rt.observer.deps[s] = struct{}{}
		s.subs[rt.observer] = struct{}{}
	}
	return s.value
}

// Peek returns the current value without registering a dependency.
// Snapshot materialization uses Peek so that taking a snapshot never
// subscribes a derived cell to the whole tree.
func (s *Signal) Peek() any {
	return s.value
}

// Version returns the number of committed writes so far.
func (s *Signal) Version() uint64 {
	return s.version
}

// Set writes a new value. The write is equality-gated: if eq(old, new)
// holds, nothing observable happens. Otherwise the version is bumped,
// dependent memos are marked stale, and watchers are notified (immediately,
// or at batch exit when inside a batch).
func (s *Signal) Set(v any) {
	old := s.value
	if s.eq(old, v) {
		return
	}
	s.value = v
	s.version++

	for m := range s.subs {
		m.stale = true
	}

	if rt.batchDepth > 0 {
		rt.defer_(s, old)
		return
	}
	s.notify(old, v)
}

// Update applies fn to the current value and writes the result.
func (s *Signal) Update(fn func(current any) any) {
	s.Set(fn(s.value))
}

// Watch registers a change observer and returns its removal function.
// Removal of an already-removed watcher is a no-op.
func (s *Signal) Watch(fn Watcher) (unwatch func()) {
	id := s.nextID
	s.nextID++
	s.watchers = append(s.watchers, watcherEntry{id: id, fn: fn})
	return func() {
		for i, w := range s.watchers {
			if w.id == id {
				s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
				return
			}
		}
	}
}

func (s *Signal) notify(old, new any) {
	// Iterate over a copy: a watcher may unwatch itself mid-pass.
	ws := make([]watcherEntry, len(s.watchers))
	copy(ws, s.watchers)
	for _, w := range ws {
		w.fn(old, new)
	}
}

// drop removes a memo's subscription. Called when a memo recomputes and
// rebuilds its dependency set.
func (s *Signal) drop(m *Memo) {
	delete(s.subs, m)
}
