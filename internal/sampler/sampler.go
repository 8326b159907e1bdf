package sampler

import (
	"log/slog"
	"time"

	"github.com/cptspacemanspiff/batterylogd/internal/device"
	"github.com/cptspacemanspiff/batterylogd/internal/record"
)

// Loop samples a fixed set of devices on an interval and appends one
// record per device per tick. The device set never changes after
// construction; only the devices' attribute values do.
type Loop struct {
	devices  []*device.Device
	writer   *record.Writer
	interval time.Duration
	timer    *Timer
	wake     <-chan struct{}
	log      *slog.Logger
}

// New creates a sampling loop. wake may be nil; if set, a value on it
// triggers an immediate tick (used after resume from suspend so the first
// post-wake record is not delayed by a full interval).
func New(devices []*device.Device, writer *record.Writer, interval time.Duration, wake <-chan struct{}, logger *slog.Logger) *Loop {
	return &Loop{
		devices:  devices,
		writer:   writer,
		interval: interval,
		timer:    NewTimer(),
		wake:     wake,
		log:      logger,
	}
}

// Run executes ticks until Stop is called. A tick that is underway when
// Stop arrives completes and is logged; no extra tick runs afterwards.
func (l *Loop) Run() error {
	for {
		for _, d := range l.devices {
			d.SampleAll()
		}
		for _, d := range l.devices {
			if err := l.writer.Append(d.Type, d.Name, d.Values()); err != nil {
				return err
			}
			l.log.Debug("sample", "topic", d.Type, "name", d.Name, "values", d.Values())
		}

		switch l.timer.Wait(l.interval, l.wake) {
		case WaitElapsed:
		case WaitWoken:
			l.log.Info("wake notification, sampling immediately", "topic", "sleep")
		case WaitKilled:
			return nil
		}
	}
}

// Stop cancels the loop's wait. Idempotent; safe from another goroutine.
func (l *Loop) Stop() {
	l.timer.Kill()
}

// Timer exposes the loop's timer for the shutdown bridge.
func (l *Loop) Timer() *Timer {
	return l.timer
}
