package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScoreReport is the immutable outcome of one finished attempt, computed
// against the separately fetched answer key.
type ScoreReport struct {
	TotalQuestions int    `json:"totalQuestions"`
	CorrectAnswers int    `json:"correctAnswers"`
	WrongAnswers   int    `json:"wrongAnswers"`
	Unanswered     int    `json:"unanswered"`
	Score          int    `json:"score"`
	Accuracy       string `json:"accuracy"` // percentage, two decimals
}

// FormatAccuracy renders a correct/total ratio as a two-decimal percentage
// string. Returns "0.00" for an empty paper.
func FormatAccuracy(correct, total int) string {
	if total <= 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(correct)/float64(total)*100)
}

// Attempt is a persisted attempt record (device history).
type Attempt struct {
	ID             uuid.UUID  `json:"id"`
	DeviceID       string     `json:"device_id"`
	TestPaperID    string     `json:"test_paper_id"`
	TestName       string     `json:"test_name"`
	TotalQuestions int        `json:"total_questions"`
	CorrectAnswers int        `json:"correct_answers"`
	WrongAnswers   int        `json:"wrong_answers"`
	Unanswered     int        `json:"unanswered"`
	Score          int        `json:"score"`
	Accuracy       float64    `json:"accuracy"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	EndReason      string     `json:"end_reason"`
}
