package sleepmon

import (
	"log/slog"

	"github.com/godbus/dbus/v5"
)

// Monitor listens for systemd-logind PrepareForSleep signals and exposes a
// wake notification channel. The sampling loop uses it to take a tick
// immediately after resume instead of waiting out the remainder of the
// interval that was in progress when the machine suspended.
type Monitor struct {
	conn *dbus.Conn
	done chan struct{}
	wake chan struct{}
	log  *slog.Logger
}

// New connects to the system bus and subscribes to sleep signals.
func New(logger *slog.Logger) (*Monitor, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, err
	}

	err = conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.login1.Manager"),
		dbus.WithMatchMember("PrepareForSleep"),
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	m := &Monitor{
		conn: conn,
		done: make(chan struct{}),
		wake: make(chan struct{}, 1),
		log:  logger,
	}
	go m.listen()
	return m, nil
}

// Wake returns a channel that receives a value each time the system
// resumes from sleep. Sends are non-blocking; a slow consumer sees at
// most one pending notification.
func (m *Monitor) Wake() <-chan struct{} {
	return m.wake
}

// Close stops the monitor and releases the bus connection.
func (m *Monitor) Close() {
	close(m.done)
	m.conn.Close()
}

func (m *Monitor) listen() {
	ch := make(chan *dbus.Signal, 16)
	m.conn.Signal(ch)
	defer m.conn.RemoveSignal(ch)

	for {
		select {
		case sig := <-ch:
			if sig.Name != "org.freedesktop.login1.Manager.PrepareForSleep" || len(sig.Body) < 1 {
				continue
			}
			entering, ok := sig.Body[0].(bool)
			if !ok {
				continue
			}
			if entering {
				m.log.Info("system going to sleep", "topic", "sleep")
				continue
			}
			m.log.Info("system woke up", "topic", "sleep")
			select {
			case m.wake <- struct{}{}:
			default:
			}
		case <-m.done:
			return
		}
	}
}
