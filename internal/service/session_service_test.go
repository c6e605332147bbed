package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prepdex/prepdex-backend/internal/content"
	"github.com/prepdex/prepdex-backend/internal/model"
	"github.com/prepdex/prepdex-backend/internal/session"
	"github.com/rs/zerolog"
)

// stubContentAPI serves a fixed paper and key, counting calls.
type stubContentAPI struct {
	mu            sync.Mutex
	paper         *model.TestPaper
	key           model.AnswerKey
	paperErr      error
	keyErr        error
	answerKeyHits int
}

func (s *stubContentAPI) TestPaper(ctx context.Context, testID string) (*model.TestPaper, error) {
	if s.paperErr != nil {
		return nil, s.paperErr
	}
	return s.paper, nil
}

func (s *stubContentAPI) AnswerKey(ctx context.Context, testID string) (model.AnswerKey, error) {
	s.mu.Lock()
	s.answerKeyHits++
	s.mu.Unlock()
	if s.keyErr != nil {
		return nil, s.keyErr
	}
	return s.key, nil
}

func (s *stubContentAPI) hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answerKeyHits
}

// stubSink collects enqueued attempts.
type stubSink struct {
	mu       sync.Mutex
	attempts []*model.Attempt
	err      error
}

func (s *stubSink) Enqueue(ctx context.Context, a *model.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.attempts = append(s.attempts, a)
	return nil
}

func (s *stubSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attempts)
}

func threeQuestionPaper() *model.TestPaper {
	questions := make([]model.Question, 3)
	for i := range questions {
		questions[i] = model.Question{
			ID:       fmt.Sprintf("q%d", i+1),
			Question: fmt.Sprintf("Question %d", i+1),
			Options: model.OptionList{
				{Key: "a", Text: "A"},
				{Key: "b", Text: "B"},
				{Key: "c", Text: "C"},
				{Key: "d", Text: "D"},
			},
		}
	}
	return &model.TestPaper{ID: "tp-1", Name: "Mock Test 1", Questions: questions}
}

func newService(api *stubContentAPI, sink *stubSink) *SessionService {
	return NewSessionService(session.NewManager(), api, sink, zerolog.Nop())
}

func TestStartSession(t *testing.T) {
	api := &stubContentAPI{paper: threeQuestionPaper()}
	svc := newService(api, &stubSink{})

	snap, err := svc.Start(context.Background(), "device-1", "tp-1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if snap.Status != session.StatusActive {
		t.Fatalf("status = %s", snap.Status)
	}
	if snap.TotalQuestions != 3 || snap.CurrentIndex != 0 {
		t.Fatalf("snap = %+v", snap)
	}
	if snap.CurrentQuestion == nil || snap.CurrentQuestion.ID != "q1" {
		t.Fatalf("current question = %+v", snap.CurrentQuestion)
	}
}

func TestStartSessionLoadFailures(t *testing.T) {
	cases := []struct {
		name     string
		paper    *model.TestPaper
		paperErr error
		wantErr  error
	}{
		{"not found", nil, content.ErrNotFound, content.ErrNotFound},
		{"upstream down", nil, content.ErrUpstream, content.ErrUpstream},
		{"empty paper", &model.TestPaper{ID: "tp-0"}, nil, ErrNoQuestions},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			api := &stubContentAPI{paper: c.paper, paperErr: c.paperErr}
			svc := newService(api, &stubSink{})

			if _, err := svc.Start(context.Background(), "device-1", "tp-x"); !errors.Is(err, c.wantErr) {
				t.Fatalf("Start = %v, want %v", err, c.wantErr)
			}
		})
	}
}

func TestOwnership(t *testing.T) {
	api := &stubContentAPI{paper: threeQuestionPaper()}
	svc := newService(api, &stubSink{})

	snap, err := svc.Start(context.Background(), "device-1", "tp-1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := svc.Get(snap.SessionID, "device-2"); !errors.Is(err, ErrNotSessionOwner) {
		t.Fatalf("Get as other device = %v, want ErrNotSessionOwner", err)
	}
	if _, err := svc.Get(uuid.New(), "device-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get unknown id = %v, want ErrSessionNotFound", err)
	}
}

func TestResultFlow(t *testing.T) {
	api := &stubContentAPI{
		paper: threeQuestionPaper(),
		key: model.AnswerKey{
			"q1": {ID: "q1", Answer: "a"},
			"q2": {ID: "q2", Answer: "b", Explanation: "Accrual basis"},
			"q3": {ID: "q3", Answer: "c"},
		},
	}
	sink := &stubSink{}
	svc := newService(api, sink)
	ctx := context.Background()

	snap, err := svc.Start(ctx, "device-1", "tp-1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	id := snap.SessionID

	if _, err := svc.SelectAnswer(id, "device-1", "q1", "a"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if _, err := svc.Next(id, "device-1"); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, err := svc.SelectAnswer(id, "device-1", "q2", "d"); err != nil {
		t.Fatalf("SelectAnswer q2: %v", err)
	}

	// Result before the session ends is refused.
	if _, err := svc.Result(ctx, id, "device-1"); !errors.Is(err, ErrSessionNotEnded) {
		t.Fatalf("early Result = %v, want ErrSessionNotEnded", err)
	}

	if _, err := svc.End(id, "device-1"); err != nil {
		t.Fatalf("End: %v", err)
	}

	result, err := svc.Result(ctx, id, "device-1")
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	want := model.ScoreReport{
		TotalQuestions: 3,
		CorrectAnswers: 1,
		WrongAnswers:   1,
		Unanswered:     1,
		Score:          1,
		Accuracy:       "33.33",
	}
	if result.Report != want {
		t.Fatalf("report = %+v, want %+v", result.Report, want)
	}
	if len(result.Review) != 3 {
		t.Fatalf("review rows = %d", len(result.Review))
	}
	if r := result.Review[1]; r.Selected != "d" || r.CorrectAnswer != "b" || r.Explanation != "Accrual basis" {
		t.Fatalf("review[1] = %+v", r)
	}

	// Retrying the results screen recompiles but records history once.
	if _, err := svc.Result(ctx, id, "device-1"); err != nil {
		t.Fatalf("second Result: %v", err)
	}
	if got := sink.count(); got != 1 {
		t.Fatalf("queued attempts = %d, want 1", got)
	}
	if a := sink.attempts[0]; a.TestPaperID != "tp-1" || a.Score != 1 || a.EndReason != "USER" {
		t.Fatalf("attempt = %+v", a)
	}
}

func TestResultRetriesAfterKeyFailure(t *testing.T) {
	api := &stubContentAPI{
		paper:  threeQuestionPaper(),
		key:    model.AnswerKey{"q1": {ID: "q1", Answer: "a"}},
		keyErr: content.ErrUpstream,
	}
	svc := newService(api, &stubSink{})
	ctx := context.Background()

	snap, err := svc.Start(ctx, "device-1", "tp-1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	id := snap.SessionID

	if _, err := svc.SelectAnswer(id, "device-1", "q1", "a"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if _, err := svc.End(id, "device-1"); err != nil {
		t.Fatalf("End: %v", err)
	}

	if _, err := svc.Result(ctx, id, "device-1"); !errors.Is(err, content.ErrUpstream) {
		t.Fatalf("Result = %v, want ErrUpstream", err)
	}

	// The answers survive the failed fetch; a retry succeeds.
	api.keyErr = nil
	result, err := svc.Result(ctx, id, "device-1")
	if err != nil {
		t.Fatalf("retry Result: %v", err)
	}
	if result.Report.CorrectAnswers != 1 {
		t.Fatalf("report = %+v", result.Report)
	}
}

func TestAttemptRequeuedAfterSinkFailure(t *testing.T) {
	api := &stubContentAPI{
		paper: threeQuestionPaper(),
		key:   model.AnswerKey{"q1": {ID: "q1", Answer: "a"}},
	}
	sink := &stubSink{err: errors.New("queue unavailable")}
	svc := newService(api, sink)
	ctx := context.Background()

	snap, err := svc.Start(ctx, "device-1", "tp-1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	id := snap.SessionID

	if _, err := svc.End(id, "device-1"); err != nil {
		t.Fatalf("End: %v", err)
	}

	// The first compile succeeds even though the history queue is down.
	if _, err := svc.Result(ctx, id, "device-1"); err != nil {
		t.Fatalf("Result with failing sink: %v", err)
	}
	if got := sink.count(); got != 0 {
		t.Fatalf("queued attempts = %d, want 0", got)
	}

	// The queue comes back; a results-screen retry records the attempt.
	sink.mu.Lock()
	sink.err = nil
	sink.mu.Unlock()

	if _, err := svc.Result(ctx, id, "device-1"); err != nil {
		t.Fatalf("retry Result: %v", err)
	}
	if got := sink.count(); got != 1 {
		t.Fatalf("queued attempts = %d, want 1", got)
	}

	// Further retries still record it exactly once.
	if _, err := svc.Result(ctx, id, "device-1"); err != nil {
		t.Fatalf("third Result: %v", err)
	}
	if got := sink.count(); got != 1 {
		t.Fatalf("queued attempts = %d, want 1", got)
	}
}

func TestDismissNeverFetchesAnswerKey(t *testing.T) {
	api := &stubContentAPI{paper: threeQuestionPaper()}
	svc := newService(api, &stubSink{})
	ctx := context.Background()

	snap, err := svc.Start(ctx, "device-1", "tp-1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := svc.Dismiss(snap.SessionID, "device-1"); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if got := api.hits(); got != 0 {
		t.Fatalf("answer key fetched %d times on dismiss", got)
	}

	// The session is gone; nothing can be compiled from it.
	if _, err := svc.Result(ctx, snap.SessionID, "device-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Result after dismiss = %v, want ErrSessionNotFound", err)
	}
}

func TestStartReplacesPreviousSession(t *testing.T) {
	api := &stubContentAPI{paper: threeQuestionPaper()}
	svc := newService(api, &stubSink{})
	ctx := context.Background()

	first, err := svc.Start(ctx, "device-1", "tp-1")
	if err != nil {
		t.Fatalf("first Start: %v", err)
	}
	second, err := svc.Start(ctx, "device-1", "tp-1")
	if err != nil {
		t.Fatalf("second Start: %v", err)
	}

	if _, err := svc.Get(first.SessionID, "device-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("old session lookup = %v, want ErrSessionNotFound", err)
	}
	if _, err := svc.Get(second.SessionID, "device-1"); err != nil {
		t.Fatalf("new session lookup: %v", err)
	}
}

func TestEndOnLastQuestionViaNext(t *testing.T) {
	api := &stubContentAPI{
		paper: threeQuestionPaper(),
		key: model.AnswerKey{
			"q1": {ID: "q1", Answer: "a"},
			"q2": {ID: "q2", Answer: "b"},
			"q3": {ID: "q3", Answer: "c"},
		},
	}
	svc := newService(api, &stubSink{})
	ctx := context.Background()

	snap, err := svc.Start(ctx, "device-1", "tp-1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	id := snap.SessionID

	for i := 0; i < 3; i++ {
		if snap, err = svc.Next(id, "device-1"); err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
	}
	if snap.Status != session.StatusEnded || snap.EndReason != session.EndReasonLastQuestion {
		t.Fatalf("snap = %+v", snap)
	}

	if _, err := svc.Result(ctx, id, "device-1"); err != nil {
		t.Fatalf("Result: %v", err)
	}
}
