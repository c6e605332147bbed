package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prepdex/prepdex-backend/internal/content"
	"github.com/prepdex/prepdex-backend/internal/middleware"
	"github.com/prepdex/prepdex-backend/internal/response"
	"github.com/prepdex/prepdex-backend/internal/service"
	"github.com/prepdex/prepdex-backend/internal/session"
	"github.com/prepdex/prepdex-backend/internal/validator"
)

// SessionHandler exposes the test session engine over HTTP. Every route
// operates on the caller's own session; ownership is enforced by the
// service layer.
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

type startSessionRequest struct {
	TestID string `json:"test_id" binding:"required"`
}

type selectAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	OptionKey  string `json:"option_key" binding:"required"`
}

type clearAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
}

type jumpRequest struct {
	Index *int `json:"index" binding:"required"`
}

// Start godoc
// POST /api/v1/sessions
// Loads the test paper and opens a new attempt for the device.
func (h *SessionHandler) Start(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req startSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	snap, err := h.sessionService.Start(c.Request.Context(), claims.DeviceID, req.TestID)
	if err != nil {
		failSession(c, err)
		return
	}

	response.Success(c, http.StatusCreated, snap)
}

// Get godoc
// GET /api/v1/sessions/:id
// Returns the current snapshot of the session.
func (h *SessionHandler) Get(c *gin.Context) {
	h.withSession(c, func(id uuid.UUID, deviceID string) (session.Snapshot, error) {
		return h.sessionService.Get(id, deviceID)
	})
}

// SelectAnswer godoc
// PUT /api/v1/sessions/:id/answer
// Records the option for the current question. Selecting the same
// option again is a no-op.
func (h *SessionHandler) SelectAnswer(c *gin.Context) {
	var req selectAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	h.withSession(c, func(id uuid.UUID, deviceID string) (session.Snapshot, error) {
		return h.sessionService.SelectAnswer(id, deviceID, req.QuestionID, req.OptionKey)
	})
}

// ClearAnswer godoc
// DELETE /api/v1/sessions/:id/answer
// Removes the stored option for the current question.
func (h *SessionHandler) ClearAnswer(c *gin.Context) {
	var req clearAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	h.withSession(c, func(id uuid.UUID, deviceID string) (session.Snapshot, error) {
		return h.sessionService.ClearAnswer(id, deviceID, req.QuestionID)
	})
}

// Next godoc
// POST /api/v1/sessions/:id/next
// Advances to the next question, or ends the attempt when called on
// the last one.
func (h *SessionHandler) Next(c *gin.Context) {
	h.withSession(c, func(id uuid.UUID, deviceID string) (session.Snapshot, error) {
		return h.sessionService.Next(id, deviceID)
	})
}

// Previous godoc
// POST /api/v1/sessions/:id/previous
// Steps back one question. Does nothing on the first question.
func (h *SessionHandler) Previous(c *gin.Context) {
	h.withSession(c, func(id uuid.UUID, deviceID string) (session.Snapshot, error) {
		return h.sessionService.Previous(id, deviceID)
	})
}

// Jump godoc
// POST /api/v1/sessions/:id/jump
// Moves directly to the question at the given index.
func (h *SessionHandler) Jump(c *gin.Context) {
	var req jumpRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	h.withSession(c, func(id uuid.UUID, deviceID string) (session.Snapshot, error) {
		return h.sessionService.JumpTo(id, deviceID, *req.Index)
	})
}

// End godoc
// POST /api/v1/sessions/:id/end
// Finishes the attempt. A second call is rejected with 409 SESSION_ENDED;
// the stored end reason is never overwritten.
func (h *SessionHandler) End(c *gin.Context) {
	h.withSession(c, func(id uuid.UUID, deviceID string) (session.Snapshot, error) {
		return h.sessionService.End(id, deviceID)
	})
}

// Dismiss godoc
// DELETE /api/v1/sessions/:id
// Abandons the attempt without scoring it.
func (h *SessionHandler) Dismiss(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.sessionService.Dismiss(id, claims.DeviceID); err != nil {
		failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "dismissed"})
}

// Result godoc
// GET /api/v1/sessions/:id/result
// Compiles and returns the score report for an ended session.
func (h *SessionHandler) Result(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.sessionService.Result(c.Request.Context(), id, claims.DeviceID)
	if err != nil {
		// A content failure here means the answer key could not be
		// fetched; the session itself is fine.
		if errors.Is(err, content.ErrNotFound) || errors.Is(err, content.ErrUpstream) {
			response.Fail(c, http.StatusBadGateway, response.ErrAnswerKeyUnavailable)
			return
		}
		failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// withSession handles the shared claims/id parsing and response
// envelope for snapshot-returning session operations.
func (h *SessionHandler) withSession(c *gin.Context, op func(id uuid.UUID, deviceID string) (session.Snapshot, error)) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	snap, err := op(id, claims.DeviceID)
	if err != nil {
		failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, snap)
}

// failSession maps engine and service errors onto the response
// taxonomy.
func failSession(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	case errors.Is(err, service.ErrNotSessionOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotOwner)
	case errors.Is(err, service.ErrSessionNotEnded):
		response.Fail(c, http.StatusConflict, response.ErrSessionNotEnded)
	case errors.Is(err, service.ErrResultNotCompilable):
		response.Fail(c, http.StatusConflict, response.ErrResultNotCompilable)
	case errors.Is(err, service.ErrNoQuestions):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidPayload)
	case errors.Is(err, session.ErrNotActive):
		response.Fail(c, http.StatusConflict, response.ErrSessionEnded)
	case errors.Is(err, session.ErrAlreadyInitialized):
		response.Fail(c, http.StatusConflict, response.ErrSessionInitialized)
	case errors.Is(err, session.ErrNotCurrentQuestion):
		response.Fail(c, http.StatusConflict, response.ErrNotCurrentQuestion)
	case errors.Is(err, session.ErrIndexOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrIndexOutOfRange)
	case errors.Is(err, session.ErrUnknownOption):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownOption)
	case errors.Is(err, content.ErrInvalidID):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
	case errors.Is(err, content.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, content.ErrUpstream):
		response.Fail(c, http.StatusBadGateway, response.ErrUpstreamUnavailable)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// ParseLimit reads the optional ?limit query parameter.
func ParseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		return 50
	}
	return limit
}
