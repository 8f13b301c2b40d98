package trace

import "sync/atomic"

// Clock is a monotonic logical clock for mutation ordering.
//
// Every recorded mutation is stamped with a strictly increasing seq number
// from this clock, so a trace replays in the exact order the mutations
// committed regardless of wall-clock skew.
//
// Thread-safety: atomic; safe for concurrent use, though the recorder's
// single-writer model means one goroutine typically calls Next.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0; the first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock resuming from a known position, e.g. the
// highest seq already present in a trace database.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and advances the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the clock's position without advancing it.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
