package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepdex/prepdex-backend/internal/model"
)

// AttemptRepository handles persisted attempt history.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// Insert stores a single compiled attempt.
func (r *AttemptRepository) Insert(ctx context.Context, a *model.Attempt) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO attempts
		 (id, device_id, test_paper_id, test_name, total_questions,
		  correct_answers, wrong_answers, unanswered, score, accuracy,
		  started_at, finished_at, end_reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		a.ID, a.DeviceID, a.TestPaperID, a.TestName, a.TotalQuestions,
		a.CorrectAnswers, a.WrongAnswers, a.Unanswered, a.Score, a.Accuracy,
		a.StartedAt, a.FinishedAt, a.EndReason)
	return err
}

// BulkInsert stores a worker batch using UNNEST so one round trip covers the
// whole flush.
func (r *AttemptRepository) BulkInsert(ctx context.Context, batch []*model.Attempt) error {
	n := len(batch)
	if n == 0 {
		return nil
	}

	ids := make([]uuid.UUID, n)
	deviceIDs := make([]string, n)
	testIDs := make([]string, n)
	testNames := make([]string, n)
	totals := make([]int, n)
	corrects := make([]int, n)
	wrongs := make([]int, n)
	unanswereds := make([]int, n)
	scores := make([]int, n)
	accuracies := make([]float64, n)
	startedAts := make([]time.Time, n)
	finishedAts := make([]*time.Time, n)
	reasons := make([]string, n)

	for i, a := range batch {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		ids[i] = a.ID
		deviceIDs[i] = a.DeviceID
		testIDs[i] = a.TestPaperID
		testNames[i] = a.TestName
		totals[i] = a.TotalQuestions
		corrects[i] = a.CorrectAnswers
		wrongs[i] = a.WrongAnswers
		unanswereds[i] = a.Unanswered
		scores[i] = a.Score
		accuracies[i] = a.Accuracy
		startedAts[i] = a.StartedAt
		finishedAts[i] = a.FinishedAt
		reasons[i] = a.EndReason
	}

	query := `
		INSERT INTO attempts
		(id, device_id, test_paper_id, test_name, total_questions,
		 correct_answers, wrong_answers, unanswered, score, accuracy,
		 started_at, finished_at, end_reason)
		SELECT * FROM UNNEST(
			$1::uuid[], $2::text[], $3::text[], $4::text[], $5::int[],
			$6::int[], $7::int[], $8::int[], $9::int[], $10::float8[],
			$11::timestamptz[], $12::timestamptz[], $13::text[]
		)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		ids, deviceIDs, testIDs, testNames, totals,
		corrects, wrongs, unanswereds, scores, accuracies,
		startedAts, finishedAts, reasons)
	return err
}

// ListByDevice retrieves a device's attempt history, newest first.
func (r *AttemptRepository) ListByDevice(ctx context.Context, deviceID string, limit int) ([]model.Attempt, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, device_id, test_paper_id, test_name, total_questions,
		        correct_answers, wrong_answers, unanswered, score, accuracy,
		        started_at, finished_at, end_reason
		 FROM attempts
		 WHERE device_id = $1
		 ORDER BY started_at DESC
		 LIMIT $2`, deviceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		if err := rows.Scan(&a.ID, &a.DeviceID, &a.TestPaperID, &a.TestName,
			&a.TotalQuestions, &a.CorrectAnswers, &a.WrongAnswers, &a.Unanswered,
			&a.Score, &a.Accuracy, &a.StartedAt, &a.FinishedAt, &a.EndReason); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
