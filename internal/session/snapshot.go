package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/prepdex/prepdex-backend/internal/model"
)

// Snapshot is a consistent read-only view of session state, taken under the
// session mutex. Handlers serialize snapshots; nothing outside this package
// sees the mutable maps.
type Snapshot struct {
	SessionID        uuid.UUID         `json:"session_id"`
	TestPaperID      string            `json:"test_paper_id"`
	TestName         string            `json:"test_name"`
	Status           Status            `json:"status"`
	EndReason        EndReason         `json:"end_reason,omitempty"`
	CurrentIndex     int               `json:"current_index"`
	TotalQuestions   int               `json:"total_questions"`
	CurrentQuestion  *model.Question   `json:"current_question,omitempty"`
	IsLastQuestion   bool              `json:"is_last_question"`
	Answers          map[string]string `json:"answers"`
	Visited          []string          `json:"visited"`
	AnsweredCount    int               `json:"answered_count"`
	RemainingSeconds int               `json:"remaining_seconds"`
	StartedAt        time.Time         `json:"started_at"`
	FinishedAt       time.Time         `json:"finished_at,omitzero"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:        s.id,
		Status:           s.status,
		EndReason:        s.endReason,
		CurrentIndex:     s.current,
		RemainingSeconds: s.remaining,
		StartedAt:        s.startedAt,
		FinishedAt:       s.finishedAt,
	}

	if s.paper == nil {
		return snap
	}

	snap.TestPaperID = s.paper.ID
	snap.TestName = s.paper.Name
	snap.TotalQuestions = len(s.paper.Questions)
	snap.IsLastQuestion = s.current == len(s.paper.Questions)-1

	if s.status == StatusActive {
		q := s.paper.Questions[s.current]
		snap.CurrentQuestion = &q
	}

	snap.Answers = make(map[string]string, len(s.answers))
	for qid, opt := range s.answers {
		snap.Answers[qid] = opt
	}
	snap.AnsweredCount = len(snap.Answers)

	snap.Visited = make([]string, 0, len(s.visited))
	for _, q := range s.paper.Questions {
		if _, ok := s.visited[q.ID]; ok {
			snap.Visited = append(snap.Visited, q.ID)
		}
	}

	return snap
}

// Paper returns the immutable test paper, nil before Initialize. The paper
// is shared read-only; collaborators must not mutate it.
func (s *Session) Paper() *model.TestPaper {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paper
}
