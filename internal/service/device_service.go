package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prepdex/prepdex-backend/internal/config"
	"github.com/prepdex/prepdex-backend/internal/model"
	"github.com/prepdex/prepdex-backend/internal/repository"
)

// DeviceClaims extends JWT standard claims with the owning device id.
// The token identifies an anonymous installation; it is not an
// authorization boundary.
type DeviceClaims struct {
	jwt.RegisteredClaims
	DeviceID string `json:"device_id"`
}

// DeviceService handles device registration and token issuance.
type DeviceService struct {
	cfg        *config.Config
	deviceRepo *repository.DeviceRepository
}

// NewDeviceService creates a new DeviceService.
func NewDeviceService(cfg *config.Config, deviceRepo *repository.DeviceRepository) *DeviceService {
	return &DeviceService{cfg: cfg, deviceRepo: deviceRepo}
}

// Register upserts the device and returns it with a fresh signed token.
// Idempotent: re-registering the same device id refreshes the record.
func (s *DeviceService) Register(ctx context.Context, req *model.RegisterDeviceRequest) (*model.Device, string, error) {
	device := &model.Device{
		ID:          req.DeviceID,
		PhoneNumber: req.PhoneNumber,
	}

	if err := s.deviceRepo.Upsert(ctx, device); err != nil {
		return nil, "", fmt.Errorf("upsert device: %w", err)
	}

	token, err := s.generateToken(device.ID)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	return device, token, nil
}

// UpdateFCMToken stores the device's current push token.
func (s *DeviceService) UpdateFCMToken(ctx context.Context, deviceID, token string) error {
	return s.deviceRepo.UpdateFCMToken(ctx, deviceID, token)
}

func (s *DeviceService) generateToken(deviceID string) (string, error) {
	now := time.Now()

	claims := DeviceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   deviceID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		DeviceID: deviceID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and validates a device JWT, returning the claims.
func (s *DeviceService) ValidateToken(tokenStr string) (*DeviceClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &DeviceClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*DeviceClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
