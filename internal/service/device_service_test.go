package service

import (
	"testing"
	"time"

	"github.com/prepdex/prepdex-backend/internal/config"
)

func tokenService(secret string, expiry time.Duration) *DeviceService {
	return NewDeviceService(&config.Config{JWTSecret: secret, JWTExpiry: expiry}, nil)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := tokenService("test-secret", time.Hour)

	token, err := svc.generateToken("device-abc-123")
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.DeviceID != "device-abc-123" {
		t.Fatalf("device id = %q", claims.DeviceID)
	}
	if claims.Subject != "device-abc-123" {
		t.Fatalf("subject = %q", claims.Subject)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := tokenService("secret-a", time.Hour).generateToken("device-1")
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}
	if _, err := tokenService("secret-b", time.Hour).ValidateToken(token); err == nil {
		t.Fatal("token signed with other secret validated")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	token, err := tokenService("test-secret", -time.Minute).generateToken("device-1")
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}
	if _, err := tokenService("test-secret", time.Hour).ValidateToken(token); err == nil {
		t.Fatal("expired token validated")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := tokenService("test-secret", time.Hour).ValidateToken("not-a-jwt"); err == nil {
		t.Fatal("garbage token validated")
	}
}
