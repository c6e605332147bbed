package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepdex/prepdex-backend/internal/model"
)

// DeviceRepository handles device registration data access.
type DeviceRepository struct {
	pool *pgxpool.Pool
}

// NewDeviceRepository creates a new DeviceRepository.
func NewDeviceRepository(pool *pgxpool.Pool) *DeviceRepository {
	return &DeviceRepository{pool: pool}
}

// Upsert registers a device or refreshes its phone number. Registration is
// idempotent: re-registering the same device id is not an error.
func (r *DeviceRepository) Upsert(ctx context.Context, d *model.Device) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO devices (id, phone_number)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE
		 SET phone_number = EXCLUDED.phone_number, updated_at = NOW()
		 RETURNING created_at, updated_at`,
		d.ID, d.PhoneNumber,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

// GetByID retrieves a device.
func (r *DeviceRepository) GetByID(ctx context.Context, id string) (*model.Device, error) {
	d := &model.Device{}
	var fcmToken *string
	err := r.pool.QueryRow(ctx,
		`SELECT id, phone_number, fcm_token, created_at, updated_at
		 FROM devices WHERE id = $1`, id,
	).Scan(&d.ID, &d.PhoneNumber, &fcmToken, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if fcmToken != nil {
		d.FCMToken = *fcmToken
	}
	return d, nil
}

// UpdateFCMToken stores the device's current push token.
func (r *DeviceRepository) UpdateFCMToken(ctx context.Context, id, token string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE devices SET fcm_token = $1, updated_at = NOW() WHERE id = $2`,
		token, id)
	return err
}
