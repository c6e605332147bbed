package session

// EventType discriminates session events pushed to subscribers.
type EventType string

const (
	EventTick  EventType = "tick"
	EventEnded EventType = "ended"
)

// Event is a state-change notification delivered to stream subscribers.
type Event struct {
	Type             EventType `json:"type"`
	RemainingSeconds int       `json:"remaining_seconds"`
	Reason           EndReason `json:"reason,omitempty"`
}

// Subscribe registers a listener for tick and ended events. The channel is
// buffered; slow consumers lose intermediate ticks rather than blocking the
// state machine.
func (s *Session) Subscribe() chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, 16)
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a listener and closes its channel. Safe against
// double calls.
func (s *Session) Unsubscribe(ch chan Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; ok {
		delete(s.subscribers, ch)
		close(ch)
	}
}

// publishLocked fans out an event without blocking. Caller holds mu.
func (s *Session) publishLocked(ev Event) {
	for ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}
