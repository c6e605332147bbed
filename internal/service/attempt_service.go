package service

import (
	"context"
	"fmt"

	"github.com/prepdex/prepdex-backend/internal/model"
	"github.com/prepdex/prepdex-backend/internal/repository"
)

// AttemptService reads back persisted attempt history. Writes go
// through the Redis queue, not through this service.
type AttemptService struct {
	attemptRepo *repository.AttemptRepository
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(attemptRepo *repository.AttemptRepository) *AttemptService {
	return &AttemptService{attemptRepo: attemptRepo}
}

// History returns the device's most recent attempts, newest first.
func (s *AttemptService) History(ctx context.Context, deviceID string, limit int) ([]model.Attempt, error) {
	attempts, err := s.attemptRepo.ListByDevice(ctx, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return attempts, nil
}
