package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prepdex/prepdex-backend/internal/model"
)

// Status enumerates session lifecycle states.
type Status string

const (
	StatusLoading Status = "LOADING"
	StatusActive  Status = "ACTIVE"
	StatusEnded   Status = "ENDED"
)

// EndReason records which path terminated the session.
type EndReason string

const (
	EndReasonUser         EndReason = "USER"
	EndReasonLastQuestion EndReason = "LAST_QUESTION"
	EndReasonTimeExpired  EndReason = "TIME_EXPIRED"
	EndReasonDismissed    EndReason = "DISMISSED"
)

// Session is the single source of truth for one in-progress attempt at a
// test paper. All mutations are serialized by the internal mutex, so the
// state is never observable half-applied even with the timer goroutine
// ticking concurrently.
type Session struct {
	id       uuid.UUID
	deviceID string

	mu        sync.Mutex
	paper     *model.TestPaper
	current   int
	answers   map[string]string
	visited   map[string]struct{}
	remaining int
	status    Status
	endReason EndReason

	timer       *Timer
	subscribers map[chan Event]struct{}
	reported    bool

	startedAt   time.Time
	finishedAt  time.Time
	lastTouched time.Time
}

// New creates an empty session in LOADING state for the given device.
func New(deviceID string) *Session {
	return &Session{
		id:          uuid.New(),
		deviceID:    deviceID,
		status:      StatusLoading,
		subscribers: make(map[chan Event]struct{}),
		lastTouched: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// DeviceID returns the owning device.
func (s *Session) DeviceID() string { return s.deviceID }

// Initialize binds the loaded paper and activates the session. Callable
// exactly once; a second call is a defect and returns ErrAlreadyInitialized.
func (s *Session) Initialize(paper *model.TestPaper) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusLoading {
		return ErrAlreadyInitialized
	}

	s.paper = paper
	s.current = 0
	s.answers = make(map[string]string)
	s.visited = make(map[string]struct{})
	s.remaining = paper.TimeLimitSeconds()
	s.status = StatusActive
	s.startedAt = time.Now()
	s.touchLocked()
	return nil
}

// StartTimer spawns the countdown goroutine. No-op for untimed papers, so
// no auto-submission can ever occur on them.
func (s *Session) StartTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive || s.remaining == model.NoTimeLimit || s.timer != nil {
		return
	}
	s.timer = newTimer(s)
}

// SelectAnswer records an option for the current question and marks it
// visited. Answers for non-current questions are rejected so a stale UI
// callback can never corrupt another question's state. Idempotent.
func (s *Session) SelectAnswer(questionID, optionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return ErrNotActive
	}

	q := s.paper.Questions[s.current]
	if q.ID != questionID {
		return ErrNotCurrentQuestion
	}
	if !q.Options.Has(optionKey) {
		return ErrUnknownOption
	}

	s.answers[questionID] = optionKey
	s.visited[questionID] = struct{}{}
	s.touchLocked()
	return nil
}

// ClearAnswer removes the recorded answer for the current question.
// The entry is deleted outright; "visited" is tracked independently, so a
// cleared question stays visited-but-unanswered.
func (s *Session) ClearAnswer(questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return ErrNotActive
	}
	if s.paper.Questions[s.current].ID != questionID {
		return ErrNotCurrentQuestion
	}

	delete(s.answers, questionID)
	s.touchLocked()
	return nil
}

// Next advances to the following question. On the last question it is the
// end-of-test transition instead: the "Next" affordance becomes "End Test"
// purely from position.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return ErrNotActive
	}

	s.visited[s.paper.Questions[s.current].ID] = struct{}{}

	if s.current == len(s.paper.Questions)-1 {
		s.endLocked(EndReasonLastQuestion)
		return nil
	}

	s.current++
	s.visited[s.paper.Questions[s.current].ID] = struct{}{}
	s.touchLocked()
	return nil
}

// Previous steps back one question. No-op at index 0.
func (s *Session) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return ErrNotActive
	}

	s.visited[s.paper.Questions[s.current].ID] = struct{}{}
	if s.current == 0 {
		return nil
	}

	s.current--
	s.visited[s.paper.Questions[s.current].ID] = struct{}{}
	s.touchLocked()
	return nil
}

// JumpTo moves directly to a question from the navigator panel, marking the
// question being left as visited.
func (s *Session) JumpTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return ErrNotActive
	}
	if index < 0 || index >= len(s.paper.Questions) {
		return ErrIndexOutOfRange
	}

	s.visited[s.paper.Questions[s.current].ID] = struct{}{}
	s.current = index
	s.visited[s.paper.Questions[s.current].ID] = struct{}{}
	s.touchLocked()
	return nil
}

// End terminates the session on user request. Idempotent: a user tap racing
// a timer expiry performs the terminal transition exactly once.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return ErrNotActive
	}
	s.endLocked(EndReasonUser)
	return nil
}

// Dismiss is the non-scoring exit path: the screen was closed mid-test.
// Stops the timer and seals the session; no result is ever compiled from a
// dismissed attempt. Safe to call in any state.
func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusEnded {
		return
	}
	s.endLocked(EndReasonDismissed)
}

// Tick is invoked by the countdown timer once per second. When the counter
// reaches zero the session ends exactly once; the status guard in endLocked
// makes a concurrent user End and a timer expiry collapse to a single
// terminal transition.
func (s *Session) Tick() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return ErrNotActive
	}
	if s.remaining == model.NoTimeLimit {
		return nil
	}

	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining == 0 {
		s.endLocked(EndReasonTimeExpired)
		return nil
	}

	s.publishLocked(Event{Type: EventTick, RemainingSeconds: s.remaining})
	return nil
}

// endLocked performs the single Active→Ended transition. Caller holds mu.
func (s *Session) endLocked(reason EndReason) {
	s.status = StatusEnded
	s.endReason = reason
	s.finishedAt = time.Now()
	s.touchLocked()

	if s.timer != nil {
		s.timer.Stop()
	}

	s.publishLocked(Event{Type: EventEnded, RemainingSeconds: s.remaining, Reason: reason})
}

func (s *Session) touchLocked() {
	s.lastTouched = time.Now()
}

// TryMarkReported flags the session as having produced a persisted result
// and reports whether this call was the first to do so. Keeps results-screen
// retries from duplicating attempt history rows.
func (s *Session) TryMarkReported() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reported {
		return false
	}
	s.reported = true
	return true
}

// UnmarkReported releases the reported flag so a later retry can queue the
// attempt again. Called when handing the attempt off for persistence fails.
func (s *Session) UnmarkReported() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reported = false
}

// IdleSince returns the time of the last mutation.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTouched
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// EndedBy returns the termination path, empty while the session lives.
func (s *Session) EndedBy() EndReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endReason
}
