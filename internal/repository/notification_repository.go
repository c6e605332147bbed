package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepdex/prepdex-backend/internal/model"
)

// NotificationRepository handles notification history storage.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Insert records a received notification.
func (r *NotificationRepository) Insert(ctx context.Context, n *model.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO notifications (id, device_id, kind, title, body, payload)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING sent_at`,
		n.ID, n.DeviceID, n.Kind, n.Title, n.Body, n.Payload,
	).Scan(&n.SentAt)
}

// ListByDevice retrieves a device's notification history, newest first.
func (r *NotificationRepository) ListByDevice(ctx context.Context, deviceID string, limit int) ([]model.Notification, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, device_id, kind, title, body, payload, sent_at
		 FROM notifications
		 WHERE device_id = $1
		 ORDER BY sent_at DESC
		 LIMIT $2`, deviceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.DeviceID, &n.Kind, &n.Title, &n.Body, &n.Payload, &n.SentAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
