package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification is a stored push-notification record, shown on the
// notifications screen.
type Notification struct {
	ID       uuid.UUID       `json:"id"`
	DeviceID string          `json:"device_id"`
	Kind     string          `json:"kind"`
	Title    string          `json:"title"`
	Body     string          `json:"body"`
	Payload  json.RawMessage `json:"payload"`
	SentAt   time.Time       `json:"sent_at"`
}

// IngestNotificationRequest is a raw push payload reported by the app for
// routing and history.
type IngestNotificationRequest struct {
	Title   string          `json:"title" binding:"omitempty,max=255"`
	Body    string          `json:"body" binding:"omitempty,max=2000"`
	Payload json.RawMessage `json:"payload" binding:"required"`
}
