package sampler

import (
	"sync/atomic"
	"time"
)

// ShutdownBridge decouples termination requests from timer cancellation.
// Notify only stores a plain atomic flag, so it is safe to call from any
// context, including directly from a signal-delivery path. A low-frequency
// poller observes the flag and performs the actual Kill through the
// timer's synchronized path, trading up to one poll period of shutdown
// latency for that safety.
type ShutdownBridge struct {
	requested atomic.Bool
	poll      time.Duration
}

// NewShutdownBridge returns a bridge polling at the given period.
func NewShutdownBridge(poll time.Duration) *ShutdownBridge {
	if poll <= 0 {
		poll = time.Second
	}
	return &ShutdownBridge{poll: poll}
}

// Notify requests termination. Safe from any context; idempotent.
func (b *ShutdownBridge) Notify() {
	b.requested.Store(true)
}

// Watch starts the poller goroutine. Once the termination flag is set,
// the timer is killed and the poller exits.
func (b *ShutdownBridge) Watch(t *Timer) {
	go func() {
		for !b.requested.Load() {
			time.Sleep(b.poll)
		}
		t.Kill()
	}()
}
