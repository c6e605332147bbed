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

// NotificationHandler records received push notifications and serves
// the per-device history.
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Ingest godoc
// POST /api/v1/notifications
// Stores a received notification and returns its decoded routing
// target. Unrecognized payloads are kept but route nowhere.
func (h *NotificationHandler) Ingest(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.IngestNotificationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	payload, route, err := h.notificationService.Ingest(c.Request.Context(), claims.DeviceID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"kind":  payload.Kind(),
		"route": route,
	})
}

// History godoc
// GET /api/v1/notifications?limit=
func (h *NotificationHandler) History(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	notifications, err := h.notificationService.History(c.Request.Context(), claims.DeviceID, ParseLimit(c))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, notifications)
}
