package session

import (
	"testing"
	"time"
)

func TestManagerSingleSessionPerDevice(t *testing.T) {
	m := NewManager()

	first := active(t, 3, 0)
	m.Add(first)

	second := New(first.DeviceID())
	if err := second.Initialize(paper(3, 0)); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	m.Add(second)

	// The replaced session is dismissed and unregistered.
	if got := first.Status(); got != StatusEnded {
		t.Fatalf("first status = %s, want ENDED", got)
	}
	if got := first.EndedBy(); got != EndReasonDismissed {
		t.Fatalf("first end reason = %s, want DISMISSED", got)
	}
	if _, ok := m.Get(first.ID()); ok {
		t.Fatal("first session still registered")
	}
	if s, ok := m.Get(second.ID()); !ok || s != second {
		t.Fatal("second session not registered")
	}
	if got := m.Count(); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}
}

func TestManagerRemove(t *testing.T) {
	m := NewManager()
	s := active(t, 3, 0)
	m.Add(s)

	m.Remove(s.ID())
	if _, ok := m.Get(s.ID()); ok {
		t.Fatal("session still registered after Remove")
	}
	// Remove does not touch session state.
	if got := s.Status(); got != StatusActive {
		t.Fatalf("status = %s, want ACTIVE", got)
	}
	// Removing twice is harmless.
	m.Remove(s.ID())
}

func TestManagerSweepIdle(t *testing.T) {
	m := NewManager()

	idle := active(t, 3, 0)
	m.Add(idle)

	time.Sleep(20 * time.Millisecond)

	// Touched just now, so it survives the sweep below.
	fresh := New("device-2")
	if err := fresh.Initialize(paper(3, 0)); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	m.Add(fresh)

	if reaped := m.SweepIdle(10 * time.Millisecond); reaped != 1 {
		t.Fatalf("reaped = %d, want 1", reaped)
	}
	if got := m.Count(); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}
	if got := idle.EndedBy(); got != EndReasonDismissed {
		t.Fatalf("end reason = %s, want DISMISSED", got)
	}
	if got := fresh.Status(); got != StatusActive {
		t.Fatalf("fresh status = %s, want ACTIVE", got)
	}
}
