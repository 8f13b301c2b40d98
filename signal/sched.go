package signal

import (
	"sync"
	"time"
)

// Trigger arms the deferred flush for a scheduling window. It receives the
// flush function and must arrange for it to run later, exactly once per
// window. The default trigger uses a zero-delay timer; tests install a
// no-op trigger and call Flush explicitly.
type Trigger func(flush func())

// Scheduler coalesces deferred jobs into flush windows.
//
// The first Schedule call in an idle window marks the window armed, arms
// the trigger, and every subsequent call in the same window only appends.
// Flush atomically swaps out the queue before invoking anything, so jobs
// scheduled during a flush land in a fresh window and never re-enter the
// one currently draining.
//
// Jobs run FIFO inside a single Batch, so N scheduled updates produce one
// watcher notification pass.
//
// Schedule and Flush are safe from any goroutine; the jobs themselves run
// under the single-writer model.
type Scheduler struct {
	mu      sync.Mutex
	pending []func()
	armed   bool
	trigger Trigger
}

// SchedulerOption configures a scheduler.
type SchedulerOption func(*Scheduler)

// WithTrigger replaces the deferral primitive. A nil-safe no-op trigger
// turns the scheduler fully cooperative: nothing runs until Flush.
func WithTrigger(t Trigger) SchedulerOption {
	return func(s *Scheduler) {
		if t != nil {
			s.trigger = t
		}
	}
}

// NewScheduler creates a scheduler. The default trigger defers the flush
// through a zero-delay timer.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		trigger: func(flush func()) {
			time.AfterFunc(0, flush)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// defaultScheduler is the one process-wide pending-flush queue.
var defaultScheduler = NewScheduler()

// Default returns the process-wide scheduler.
func Default() *Scheduler {
	return defaultScheduler
}

// Schedule enqueues fn for the current window, arming the deferred flush if
// the window was idle.
func (s *Scheduler) Schedule(fn func()) {
	s.mu.Lock()
	s.pending = append(s.pending, fn)
	arm := !s.armed
	s.armed = true
	s.mu.Unlock()

	if arm {
		s.trigger(s.Flush)
	}
}

// Flush drains the current window synchronously: swap the queue, clear the
// armed flag, run every job in submission order inside one Batch. Calling
// Flush on an idle scheduler is a no-op, so an explicit Flush followed by
// the trigger's deferred one is harmless.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	jobs := s.pending
	s.pending = nil
	s.armed = false
	s.mu.Unlock()

	if len(jobs) == 0 {
		return
	}

	Batch(func() {
		for _, job := range jobs {
			job()
		}
	})
}

// Pending reports the number of jobs waiting in the current window.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
