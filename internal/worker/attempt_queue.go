package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prepdex/prepdex-backend/internal/config"
	"github.com/prepdex/prepdex-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// AttemptQueue pushes compiled attempts onto the Redis persistence queue.
// Producers stay fast; the AttemptWorker drains the list into PostgreSQL.
type AttemptQueue struct {
	rdb *redis.Client
}

// NewAttemptQueue creates a new AttemptQueue.
func NewAttemptQueue(rdb *redis.Client) *AttemptQueue {
	return &AttemptQueue{rdb: rdb}
}

// Enqueue serializes an attempt and appends it to the queue.
func (q *AttemptQueue) Enqueue(ctx context.Context, a *model.Attempt) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	if err := q.rdb.RPush(ctx, config.WorkerKey.PersistAttemptsQueue, raw).Err(); err != nil {
		return fmt.Errorf("enqueue attempt: %w", err)
	}
	return nil
}
