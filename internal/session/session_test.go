package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prepdex/prepdex-backend/internal/model"
)

// paper builds an n-question test paper with options a..d per question.
func paper(n, limitMinutes int) *model.TestPaper {
	questions := make([]model.Question, n)
	for i := range questions {
		questions[i] = model.Question{
			ID:       fmt.Sprintf("q%d", i+1),
			Question: fmt.Sprintf("Question %d", i+1),
			Options: model.OptionList{
				{Key: "a", Text: "Alpha"},
				{Key: "b", Text: "Bravo"},
				{Key: "c", Text: "Charlie"},
				{Key: "d", Text: "Delta"},
			},
		}
	}
	return &model.TestPaper{
		ID:               "tp-1",
		Name:             "Sample Paper",
		TimeLimitMinutes: limitMinutes,
		Questions:        questions,
	}
}

func active(t *testing.T, n, limitMinutes int) *Session {
	t.Helper()
	s := New("device-1")
	if err := s.Initialize(paper(n, limitMinutes)); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return s
}

func TestInitializeOnce(t *testing.T) {
	s := New("device-1")
	if err := s.Initialize(paper(3, 0)); err != nil {
		t.Fatalf("first Initialize: %v", err)
	}
	if err := s.Initialize(paper(3, 0)); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("second Initialize = %v, want ErrAlreadyInitialized", err)
	}
}

func TestSelectAnswer(t *testing.T) {
	s := active(t, 3, 0)

	if err := s.SelectAnswer("q1", "b"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if got := s.Snapshot().Answers["q1"]; got != "b" {
		t.Fatalf("answers[q1] = %q, want b", got)
	}

	// Re-selecting the same option changes nothing.
	if err := s.SelectAnswer("q1", "b"); err != nil {
		t.Fatalf("repeat SelectAnswer: %v", err)
	}
	snap := s.Snapshot()
	if snap.Answers["q1"] != "b" || snap.AnsweredCount != 1 {
		t.Fatalf("after repeat: answers=%v count=%d", snap.Answers, snap.AnsweredCount)
	}

	// Selecting a different option overwrites.
	if err := s.SelectAnswer("q1", "c"); err != nil {
		t.Fatalf("overwrite SelectAnswer: %v", err)
	}
	if got := s.Snapshot().Answers["q1"]; got != "c" {
		t.Fatalf("answers[q1] = %q, want c", got)
	}
}

func TestSelectAnswerRejectsNonCurrent(t *testing.T) {
	s := active(t, 3, 0)
	if err := s.SelectAnswer("q2", "a"); !errors.Is(err, ErrNotCurrentQuestion) {
		t.Fatalf("SelectAnswer(q2) = %v, want ErrNotCurrentQuestion", err)
	}
}

func TestSelectAnswerRejectsUnknownOption(t *testing.T) {
	s := active(t, 3, 0)
	if err := s.SelectAnswer("q1", "z"); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("SelectAnswer(z) = %v, want ErrUnknownOption", err)
	}
}

func TestClearAnswerDeletesEntry(t *testing.T) {
	s := active(t, 3, 0)

	if err := s.SelectAnswer("q1", "a"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if err := s.ClearAnswer("q1"); err != nil {
		t.Fatalf("ClearAnswer: %v", err)
	}

	snap := s.Snapshot()
	if _, ok := snap.Answers["q1"]; ok {
		t.Fatalf("answers still contains q1: %v", snap.Answers)
	}
	if snap.AnsweredCount != 0 {
		t.Fatalf("AnsweredCount = %d, want 0", snap.AnsweredCount)
	}
	// Cleared questions stay visited.
	if len(snap.Visited) == 0 || snap.Visited[0] != "q1" {
		t.Fatalf("Visited = %v, want [q1 ...]", snap.Visited)
	}
}

func TestNavigationBounds(t *testing.T) {
	s := active(t, 3, 0)

	// Previous at index 0 is a no-op, not an error.
	if err := s.Previous(); err != nil {
		t.Fatalf("Previous at 0: %v", err)
	}
	if got := s.Snapshot().CurrentIndex; got != 0 {
		t.Fatalf("index after Previous at 0 = %d, want 0", got)
	}

	if err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got := s.Snapshot().CurrentIndex; got != 1 {
		t.Fatalf("index = %d, want 1", got)
	}

	if err := s.Previous(); err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if got := s.Snapshot().CurrentIndex; got != 0 {
		t.Fatalf("index = %d, want 0", got)
	}
}

func TestNavigationPreservesAnswers(t *testing.T) {
	s := active(t, 3, 0)

	if err := s.SelectAnswer("q1", "b"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if err := s.Previous(); err != nil {
		t.Fatalf("Previous: %v", err)
	}

	snap := s.Snapshot()
	if snap.CurrentIndex != 0 || snap.Answers["q1"] != "b" {
		t.Fatalf("round trip: index=%d answers=%v", snap.CurrentIndex, snap.Answers)
	}
}

func TestNextOnLastQuestionEnds(t *testing.T) {
	s := active(t, 3, 0)

	for i := 0; i < 2; i++ {
		if err := s.Next(); err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
	}
	if got := s.Snapshot().CurrentIndex; got != 2 {
		t.Fatalf("index = %d, want 2", got)
	}
	if !s.Snapshot().IsLastQuestion {
		t.Fatal("IsLastQuestion = false on last question")
	}

	// Next on the last question is the end-of-test transition.
	if err := s.Next(); err != nil {
		t.Fatalf("final Next: %v", err)
	}
	if got := s.Status(); got != StatusEnded {
		t.Fatalf("status = %s, want ENDED", got)
	}
	if got := s.EndedBy(); got != EndReasonLastQuestion {
		t.Fatalf("end reason = %s, want LAST_QUESTION", got)
	}
	// Index never passes the end of the paper.
	if got := s.Snapshot().CurrentIndex; got != 2 {
		t.Fatalf("index after end = %d, want 2", got)
	}
}

func TestJumpTo(t *testing.T) {
	s := active(t, 5, 0)

	if err := s.JumpTo(3); err != nil {
		t.Fatalf("JumpTo(3): %v", err)
	}
	if got := s.Snapshot().CurrentIndex; got != 3 {
		t.Fatalf("index = %d, want 3", got)
	}

	for _, idx := range []int{-1, 5, 100} {
		if err := s.JumpTo(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("JumpTo(%d) = %v, want ErrIndexOutOfRange", idx, err)
		}
	}
}

func TestEndExactlyOnce(t *testing.T) {
	s := active(t, 3, 0)

	if err := s.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	if got := s.EndedBy(); got != EndReasonUser {
		t.Fatalf("end reason = %s, want USER", got)
	}

	// Second End reports the session as no longer active; the original
	// reason is untouched.
	if err := s.End(); !errors.Is(err, ErrNotActive) {
		t.Fatalf("second End = %v, want ErrNotActive", err)
	}
	if got := s.EndedBy(); got != EndReasonUser {
		t.Fatalf("end reason changed to %s", got)
	}
}

func TestEndedSessionRejectsMutations(t *testing.T) {
	s := active(t, 3, 0)
	if err := s.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	ops := map[string]error{
		"SelectAnswer": s.SelectAnswer("q1", "a"),
		"ClearAnswer":  s.ClearAnswer("q1"),
		"Next":         s.Next(),
		"Previous":     s.Previous(),
		"JumpTo":       s.JumpTo(1),
	}
	for name, err := range ops {
		if !errors.Is(err, ErrNotActive) {
			t.Fatalf("%s after end = %v, want ErrNotActive", name, err)
		}
	}
}

func TestDismiss(t *testing.T) {
	s := active(t, 3, 0)
	s.Dismiss()

	if got := s.Status(); got != StatusEnded {
		t.Fatalf("status = %s, want ENDED", got)
	}
	if got := s.EndedBy(); got != EndReasonDismissed {
		t.Fatalf("end reason = %s, want DISMISSED", got)
	}

	// Dismiss after end keeps the original reason.
	s2 := active(t, 3, 0)
	if err := s2.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	s2.Dismiss()
	if got := s2.EndedBy(); got != EndReasonUser {
		t.Fatalf("dismiss overwrote reason: %s", got)
	}
}

func TestTickCountdownExpires(t *testing.T) {
	s := active(t, 3, 1) // 1 minute = 60 ticks

	for i := 0; i < 59; i++ {
		if err := s.Tick(); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	snap := s.Snapshot()
	if snap.Status != StatusActive || snap.RemainingSeconds != 1 {
		t.Fatalf("after 59 ticks: status=%s remaining=%d", snap.Status, snap.RemainingSeconds)
	}

	if err := s.Tick(); err != nil {
		t.Fatalf("final tick: %v", err)
	}
	if got := s.Status(); got != StatusEnded {
		t.Fatalf("status = %s, want ENDED", got)
	}
	if got := s.EndedBy(); got != EndReasonTimeExpired {
		t.Fatalf("end reason = %s, want TIME_EXPIRED", got)
	}

	// No further ticks once ended.
	if err := s.Tick(); !errors.Is(err, ErrNotActive) {
		t.Fatalf("tick after end = %v, want ErrNotActive", err)
	}
}

func TestUntimedPaperNeverExpires(t *testing.T) {
	s := active(t, 3, 0)

	if got := s.Snapshot().RemainingSeconds; got != model.NoTimeLimit {
		t.Fatalf("remaining = %d, want NoTimeLimit", got)
	}
	for i := 0; i < 1000; i++ {
		if err := s.Tick(); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if got := s.Status(); got != StatusActive {
		t.Fatalf("status = %s, want ACTIVE", got)
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	s := active(t, 3, 1)
	ch := s.Subscribe()

	if err := s.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	ev := <-ch
	if ev.Type != EventTick || ev.RemainingSeconds != 59 {
		t.Fatalf("tick event = %+v", ev)
	}

	if err := s.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	ev = <-ch
	if ev.Type != EventEnded || ev.Reason != EndReasonUser {
		t.Fatalf("ended event = %+v", ev)
	}

	s.Unsubscribe(ch)
	if _, open := <-ch; open {
		t.Fatal("channel still open after Unsubscribe")
	}
}

func TestTryMarkReported(t *testing.T) {
	s := active(t, 3, 0)
	if !s.TryMarkReported() {
		t.Fatal("first TryMarkReported = false")
	}
	if s.TryMarkReported() {
		t.Fatal("second TryMarkReported = true")
	}

	// Releasing the flag re-arms it for a retry.
	s.UnmarkReported()
	if !s.TryMarkReported() {
		t.Fatal("TryMarkReported after UnmarkReported = false")
	}
}

func TestSnapshotHidesQuestionAfterEnd(t *testing.T) {
	s := active(t, 3, 0)
	if s.Snapshot().CurrentQuestion == nil {
		t.Fatal("CurrentQuestion nil while active")
	}
	if err := s.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	if s.Snapshot().CurrentQuestion != nil {
		t.Fatal("CurrentQuestion still set after end")
	}
}
