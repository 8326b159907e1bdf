package sampler

import (
	"sync"
	"time"
)

// WaitResult says why a Timer.Wait call returned.
type WaitResult int

const (
	// WaitElapsed means the full interval passed without cancellation.
	WaitElapsed WaitResult = iota
	// WaitWoken means a wake notification arrived before the interval ran out.
	WaitWoken
	// WaitKilled means the timer was cancelled.
	WaitKilled
)

// Timer is an interruptible delay. Wait blocks for an interval unless
// Kill unblocks it first. Kill is single-shot and idempotent: once
// killed, every subsequent Wait returns immediately.
type Timer struct {
	mu     sync.Mutex
	killed bool
	done   chan struct{}
}

// NewTimer returns a timer that has not been killed.
func NewTimer() *Timer {
	return &Timer{done: make(chan struct{})}
}

// Wait blocks until the interval elapses, a value arrives on wake, or the
// timer is killed, whichever comes first. A nil wake channel never fires.
func (t *Timer) Wait(d time.Duration, wake <-chan struct{}) WaitResult {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return WaitElapsed
	case <-wake:
		return WaitWoken
	case <-t.done:
		return WaitKilled
	}
}

// Kill cancels the timer, unblocking any in-progress Wait immediately.
// A second Kill is a no-op.
func (t *Timer) Kill() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.killed {
		return
	}
	t.killed = true
	close(t.done)
}

// Killed reports whether Kill has been called.
func (t *Timer) Killed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.killed
}
