package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cooperative returns a scheduler whose flush only runs when the test calls
// Flush, plus a counter of how many windows were armed.
func cooperative() (*Scheduler, *int) {
	armed := 0
	s := NewScheduler(WithTrigger(func(func()) {
		armed++
	}))
	return s, &armed
}

func TestScheduler_FIFO(t *testing.T) {
	s, _ := cooperative()

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		s.Schedule(func() { order = append(order, i) })
	}

	require.Equal(t, 3, s.Pending())
	s.Flush()
	assert.Equal(t, []int{1, 2, 3}, order, "jobs run in submission order")
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_ArmsOncePerWindow(t *testing.T) {
	s, armed := cooperative()

	s.Schedule(func() {})
	s.Schedule(func() {})
	s.Schedule(func() {})
	assert.Equal(t, 1, *armed, "one deferred callback per window")

	s.Flush()
	s.Schedule(func() {})
	assert.Equal(t, 2, *armed, "a fresh window arms again")
	s.Flush()
}

func TestScheduler_FlushEmptyIsNoop(t *testing.T) {
	s, _ := cooperative()
	s.Flush()
	s.Flush()
}

func TestScheduler_SwapOnFlush(t *testing.T) {
	s, armed := cooperative()

	var ran []string
	s.Schedule(func() {
		ran = append(ran, "first")
		s.Schedule(func() { ran = append(ran, "second") })
	})

	s.Flush()
	assert.Equal(t, []string{"first"}, ran, "job scheduled during a flush defers to the next window")
	assert.Equal(t, 2, *armed)
	assert.Equal(t, 1, s.Pending())

	s.Flush()
	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestScheduler_FlushRunsInsideOneBatch(t *testing.T) {
	s, _ := cooperative()
	sig := New(0)

	fired := 0
	sig.Watch(func(_, _ any) { fired++ })

	s.Schedule(func() { sig.Set(1) })
	s.Schedule(func() { sig.Set(2) })
	s.Schedule(func() { sig.Set(3) })
	s.Flush()

	assert.Equal(t, 3, sig.Get())
	assert.Equal(t, 1, fired, "one notification pass per flush")
}

func TestScheduler_DefaultTriggerFlushesEventually(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	s.Schedule(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("deferred flush never ran")
	}
}
