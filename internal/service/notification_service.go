package service

import (
	"context"
	"fmt"

	"github.com/prepdex/prepdex-backend/internal/model"
	"github.com/prepdex/prepdex-backend/internal/notification"
	"github.com/prepdex/prepdex-backend/internal/repository"
	"github.com/rs/zerolog"
)

// NotificationService records received push payloads and resolves their
// navigation routes.
type NotificationService struct {
	repo *repository.NotificationRepository
	log  zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo *repository.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		repo: repo,
		log:  log.With().Str("component", "notification_service").Logger(),
	}
}

// Ingest decodes a raw push payload into its typed variant, stores the
// history record, and returns the route the app should open. Unknown
// payload kinds are stored too; routing falls back to the notification
// list.
func (s *NotificationService) Ingest(ctx context.Context, deviceID string, req *model.IngestNotificationRequest) (notification.Payload, notification.Route, error) {
	payload := notification.Decode(req.Payload)
	route := payload.Route()

	record := &model.Notification{
		DeviceID: deviceID,
		Kind:     string(payload.Kind()),
		Title:    req.Title,
		Body:     req.Body,
		Payload:  req.Payload,
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, notification.Route{}, fmt.Errorf("store notification: %w", err)
	}

	if payload.Kind() == notification.KindUnknown {
		s.log.Warn().
			Str("device_id", deviceID).
			RawJSON("payload", req.Payload).
			Msg("Unknown notification payload kind")
	}

	return payload, route, nil
}

// History lists a device's stored notifications, newest first.
func (s *NotificationService) History(ctx context.Context, deviceID string, limit int) ([]model.Notification, error) {
	return s.repo.ListByDevice(ctx, deviceID, limit)
}
