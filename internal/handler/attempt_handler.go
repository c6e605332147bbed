package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepdex/prepdex-backend/internal/middleware"
	"github.com/prepdex/prepdex-backend/internal/response"
	"github.com/prepdex/prepdex-backend/internal/service"
)

// AttemptHandler serves the persisted attempt history.
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// History godoc
// GET /api/v1/attempts?limit=
func (h *AttemptHandler) History(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	attempts, err := h.attemptService.History(c.Request.Context(), claims.DeviceID, ParseLimit(c))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, attempts)
}
