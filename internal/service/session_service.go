package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prepdex/prepdex-backend/internal/model"
	"github.com/prepdex/prepdex-backend/internal/session"
	"github.com/rs/zerolog"
)

// Domain errors.
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrNotSessionOwner     = errors.New("session belongs to another device")
	ErrSessionNotEnded     = errors.New("session has not ended")
	ErrResultNotCompilable = errors.New("dismissed attempts have no result")
	ErrNoQuestions         = errors.New("test paper has no questions")
)

// ContentAPI is the slice of the content client the session engine needs.
type ContentAPI interface {
	TestPaper(ctx context.Context, testID string) (*model.TestPaper, error)
	AnswerKey(ctx context.Context, testID string) (model.AnswerKey, error)
}

// AttemptSink receives compiled attempts for asynchronous persistence.
type AttemptSink interface {
	Enqueue(ctx context.Context, a *model.Attempt) error
}

// SessionService orchestrates the test session engine: loads papers,
// drives the state machine, and hands finished attempts to the result
// compiler and the persistence queue.
type SessionService struct {
	manager  *session.Manager
	api      ContentAPI
	attempts AttemptSink
	log      zerolog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(manager *session.Manager, api ContentAPI, attempts AttemptSink, log zerolog.Logger) *SessionService {
	return &SessionService{
		manager:  manager,
		api:      api,
		attempts: attempts,
		log:      log.With().Str("component", "session_service").Logger(),
	}
}

// Start loads the paper and opens a fresh attempt for the device. Any
// previous live attempt of the device is dismissed; there are no
// resume-from-server semantics.
func (s *SessionService) Start(ctx context.Context, deviceID, testID string) (session.Snapshot, error) {
	paper, err := s.api.TestPaper(ctx, testID)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("load test paper: %w", err)
	}
	if len(paper.Questions) == 0 {
		return session.Snapshot{}, ErrNoQuestions
	}

	sess := session.New(deviceID)
	if err := sess.Initialize(paper); err != nil {
		// New sessions start in LOADING; this cannot happen.
		return session.Snapshot{}, fmt.Errorf("initialize session: %w", err)
	}

	s.manager.Add(sess)
	sess.StartTimer()

	s.log.Info().
		Str("session_id", sess.ID().String()).
		Str("device_id", deviceID).
		Str("test_id", testID).
		Int("questions", len(paper.Questions)).
		Int("time_limit_minutes", paper.TimeLimitMinutes).
		Msg("Session started")

	return sess.Snapshot(), nil
}

// Get returns the current state of a device's session.
func (s *SessionService) Get(sessionID uuid.UUID, deviceID string) (session.Snapshot, error) {
	sess, err := s.owned(sessionID, deviceID)
	if err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// SelectAnswer records an option for the current question.
func (s *SessionService) SelectAnswer(sessionID uuid.UUID, deviceID, questionID, optionKey string) (session.Snapshot, error) {
	sess, err := s.owned(sessionID, deviceID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.SelectAnswer(questionID, optionKey); err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// ClearAnswer removes the current question's recorded answer.
func (s *SessionService) ClearAnswer(sessionID uuid.UUID, deviceID, questionID string) (session.Snapshot, error) {
	sess, err := s.owned(sessionID, deviceID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.ClearAnswer(questionID); err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// Next advances the session; on the last question it ends the attempt.
func (s *SessionService) Next(sessionID uuid.UUID, deviceID string) (session.Snapshot, error) {
	sess, err := s.owned(sessionID, deviceID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.Next(); err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// Previous steps back one question.
func (s *SessionService) Previous(sessionID uuid.UUID, deviceID string) (session.Snapshot, error) {
	sess, err := s.owned(sessionID, deviceID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.Previous(); err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// JumpTo moves to an arbitrary question from the navigator panel.
func (s *SessionService) JumpTo(sessionID uuid.UUID, deviceID string, index int) (session.Snapshot, error) {
	sess, err := s.owned(sessionID, deviceID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.JumpTo(index); err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// End terminates the attempt on user request.
func (s *SessionService) End(sessionID uuid.UUID, deviceID string) (session.Snapshot, error) {
	sess, err := s.owned(sessionID, deviceID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.End(); err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// Dismiss is the non-scoring exit: the screen was closed. The timer is
// released and the session removed; the answer key is never fetched.
func (s *SessionService) Dismiss(sessionID uuid.UUID, deviceID string) error {
	sess, err := s.owned(sessionID, deviceID)
	if err != nil {
		return err
	}

	sess.Dismiss()
	s.manager.Remove(sessionID)

	s.log.Info().
		Str("session_id", sessionID.String()).
		Str("device_id", deviceID).
		Msg("Session dismissed")
	return nil
}

// Subscribe attaches an event listener to a live session for streaming.
func (s *SessionService) Subscribe(sessionID uuid.UUID, deviceID string) (*session.Session, chan session.Event, error) {
	sess, err := s.owned(sessionID, deviceID)
	if err != nil {
		return nil, nil, err
	}
	return sess, sess.Subscribe(), nil
}

// QuestionReview pairs a question with the device's answer and the key.
type QuestionReview struct {
	QuestionID    string `json:"question_id"`
	Question      string `json:"question"`
	Selected      string `json:"selected,omitempty"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
}

// Result is the results-screen payload.
type Result struct {
	Report model.ScoreReport `json:"report"`
	Review []QuestionReview  `json:"review"`
}

// Result fetches the answer key and compiles the score report for an ended
// session. The key fetch is the only thing retried on failure; the
// session's answers are untouched, so the results screen can simply call
// again. The first successful compile also queues the attempt for history.
func (s *SessionService) Result(ctx context.Context, sessionID uuid.UUID, deviceID string) (*Result, error) {
	sess, err := s.owned(sessionID, deviceID)
	if err != nil {
		return nil, err
	}

	snap := sess.Snapshot()
	if snap.Status != session.StatusEnded {
		return nil, ErrSessionNotEnded
	}
	if snap.EndReason == session.EndReasonDismissed {
		return nil, ErrResultNotCompilable
	}

	paper := sess.Paper()

	key, err := s.api.AnswerKey(ctx, paper.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch answer key: %w", err)
	}

	report := session.Compile(paper, snap.Answers, key)

	result := &Result{
		Report: report,
		Review: make([]QuestionReview, 0, len(paper.Questions)),
	}
	for _, q := range paper.Questions {
		entry := key[q.ID]
		result.Review = append(result.Review, QuestionReview{
			QuestionID:    q.ID,
			Question:      q.Question,
			Selected:      snap.Answers[q.ID],
			CorrectAnswer: entry.Answer,
			Explanation:   entry.Explanation,
		})
	}

	// The flag is taken before enqueueing so concurrent Result calls
	// cannot both queue the row, and given back on failure so a later
	// retry queues it after a transient queue outage.
	if sess.TryMarkReported() {
		if err := s.recordAttempt(ctx, deviceID, paper, snap, report); err != nil {
			sess.UnmarkReported()
		}
	}

	return result, nil
}

// recordAttempt queues the finished attempt for the persistence worker.
// Failures are logged, not surfaced; history is best-effort and must never
// cost the user their score.
func (s *SessionService) recordAttempt(ctx context.Context, deviceID string, paper *model.TestPaper, snap session.Snapshot, report model.ScoreReport) error {
	accuracy := 0.0
	if report.TotalQuestions > 0 {
		accuracy = float64(report.CorrectAnswers) / float64(report.TotalQuestions) * 100
	}

	finishedAt := snap.FinishedAt
	attempt := &model.Attempt{
		DeviceID:       deviceID,
		TestPaperID:    paper.ID,
		TestName:       paper.Name,
		TotalQuestions: report.TotalQuestions,
		CorrectAnswers: report.CorrectAnswers,
		WrongAnswers:   report.WrongAnswers,
		Unanswered:     report.Unanswered,
		Score:          report.Score,
		Accuracy:       accuracy,
		StartedAt:      snap.StartedAt,
		FinishedAt:     &finishedAt,
		EndReason:      string(snap.EndReason),
	}

	if err := s.attempts.Enqueue(ctx, attempt); err != nil {
		s.log.Error().Err(err).
			Str("device_id", deviceID).
			Str("test_id", paper.ID).
			Msg("Failed to queue attempt for persistence")
		return err
	}
	return nil
}

func (s *SessionService) owned(sessionID uuid.UUID, deviceID string) (*session.Session, error) {
	sess, ok := s.manager.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.DeviceID() != deviceID {
		return nil, ErrNotSessionOwner
	}
	return sess, nil
}
