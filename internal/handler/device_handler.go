package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepdex/prepdex-backend/internal/middleware"
	"github.com/prepdex/prepdex-backend/internal/model"
	"github.com/prepdex/prepdex-backend/internal/response"
	"github.com/prepdex/prepdex-backend/internal/service"
	"github.com/prepdex/prepdex-backend/internal/validator"
)

// DeviceHandler handles device registration and push-token upkeep.
type DeviceHandler struct {
	deviceService *service.DeviceService
}

// NewDeviceHandler creates a new DeviceHandler.
func NewDeviceHandler(deviceService *service.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService}
}

// Register godoc
// POST /api/v1/devices/register
// Upserts the anonymous device record and returns a device token.
func (h *DeviceHandler) Register(c *gin.Context) {
	var req model.RegisterDeviceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	device, token, err := h.deviceService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"device": device,
		"token":  token,
	})
}

// UpdateFCMToken godoc
// PUT /api/v1/devices/fcm-token
// Stores the device's current push token.
func (h *DeviceHandler) UpdateFCMToken(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.UpdateFCMTokenRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.deviceService.UpdateFCMToken(c.Request.Context(), claims.DeviceID, req.FCMToken); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "updated"})
}
