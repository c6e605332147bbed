package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager is the registry of live sessions. A device owns at most one
// attempt at a time; starting a new one dismisses the previous session and
// releases its timer.
type Manager struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*Session
	byDevice map[string]uuid.UUID
}

// NewManager creates an empty registry.
func NewManager() *Manager {
	return &Manager{
		byID:     make(map[uuid.UUID]*Session),
		byDevice: make(map[string]uuid.UUID),
	}
}

// Add registers a session, dismissing any session the device already owns.
func (m *Manager) Add(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prevID, ok := m.byDevice[s.DeviceID()]; ok {
		if prev, ok := m.byID[prevID]; ok {
			prev.Dismiss()
			delete(m.byID, prevID)
		}
	}

	m.byID[s.ID()] = s
	m.byDevice[s.DeviceID()] = s.ID()
}

// Get looks up a session by id.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	return s, ok
}

// Remove unregisters a session without touching its state.
func (m *Manager) Remove(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.byID[id]
	if !ok {
		return
	}
	delete(m.byID, id)
	if m.byDevice[s.DeviceID()] == id {
		delete(m.byDevice, s.DeviceID())
	}
}

// Count returns the number of registered sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// SweepIdle dismisses and unregisters sessions untouched for longer than
// ttl. Returns the number of sessions reaped. Used by the reaper worker so
// abandoned attempts cannot leak timer goroutines.
func (m *Manager) SweepIdle(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	reaped := 0
	for id, s := range m.byID {
		if s.IdleSince().After(cutoff) {
			continue
		}
		s.Dismiss()
		delete(m.byID, id)
		if m.byDevice[s.DeviceID()] == id {
			delete(m.byDevice, s.DeviceID())
		}
		reaped++
	}
	return reaped
}
