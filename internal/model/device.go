package model

import "time"

// Device is an anonymous app installation identified by a client-generated
// device id. Registration is identification, not a security boundary.
type Device struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	FCMToken    string    `json:"fcm_token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RegisterDeviceRequest is the payload for device registration.
type RegisterDeviceRequest struct {
	DeviceID    string `json:"device_id" binding:"required,min=8,max=64"`
	PhoneNumber string `json:"phone_number" binding:"required,min=7,max=15,numeric"`
}

// UpdateFCMTokenRequest is the payload for refreshing a device's push token.
type UpdateFCMTokenRequest struct {
	FCMToken string `json:"fcm_token" binding:"required,min=10,max=4096"`
}
