package session

import (
	"sync"
	"time"
)

// Timer drives the one-second countdown of a timed session. Stop is a
// cancellable handle: idempotent, safe from any goroutine, and guaranteed
// delivered before the owning session is discarded. The timer never ends a
// session itself; it only calls Tick, and the session's status guard keeps
// the terminal transition single-shot.
type Timer struct {
	stop chan struct{}
	once sync.Once
}

func newTimer(s *Session) *Timer {
	t := &Timer{stop: make(chan struct{})}
	go t.run(s)
	return t
}

func (t *Timer) run(s *Session) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			if err := s.Tick(); err != nil {
				// Session ended through another path.
				return
			}
		}
	}
}

// Stop cancels the countdown. Called on every end path, including expiry.
func (t *Timer) Stop() {
	t.once.Do(func() { close(t.stop) })
}
