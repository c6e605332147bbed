package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prepdex/prepdex-backend/internal/content"
	"github.com/prepdex/prepdex-backend/internal/model"
	"github.com/prepdex/prepdex-backend/internal/response"
	"github.com/prepdex/prepdex-backend/internal/service"
)

// CatalogHandler serves the browsing surface: topics, papers, notes,
// videos, the newly-added feed and search. All content comes from the
// upstream CMS.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Topics godoc
// GET /api/v1/catalog/courses/:course/topics
func (h *CatalogHandler) Topics(c *gin.Context) {
	courseType, ok := model.ParseCourseType(c.Param("course"))
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	topics, err := h.catalogService.TopicsByCourse(c.Request.Context(), courseType)
	if err != nil {
		failCatalog(c, err)
		return
	}

	response.Success(c, http.StatusOK, topics)
}

// TestPapers godoc
// GET /api/v1/catalog/topics/:topicId/tests
func (h *CatalogHandler) TestPapers(c *gin.Context) {
	papers, err := h.catalogService.TestPapersByTopic(c.Request.Context(), c.Param("topicId"))
	if err != nil {
		failCatalog(c, err)
		return
	}

	response.Success(c, http.StatusOK, papers)
}

// Notes godoc
// GET /api/v1/catalog/topics/:topicId/notes?type=
func (h *CatalogHandler) Notes(c *gin.Context) {
	notes, err := h.catalogService.NotesByTopic(c.Request.Context(), c.Param("topicId"), c.Query("type"))
	if err != nil {
		failCatalog(c, err)
		return
	}

	response.Success(c, http.StatusOK, notes)
}

// VideoNotes godoc
// GET /api/v1/catalog/topics/:topicId/videos?type=
func (h *CatalogHandler) VideoNotes(c *gin.Context) {
	videos, err := h.catalogService.VideoNotesByTopic(c.Request.Context(), c.Param("topicId"), c.Query("type"))
	if err != nil {
		failCatalog(c, err)
		return
	}

	response.Success(c, http.StatusOK, videos)
}

// NewlyAdded godoc
// GET /api/v1/catalog/newly-added
func (h *CatalogHandler) NewlyAdded(c *gin.Context) {
	items, err := h.catalogService.NewlyAdded(c.Request.Context())
	if err != nil {
		failCatalog(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// Search godoc
// GET /api/v1/catalog/search?q=
func (h *CatalogHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		return
	}

	result, err := h.catalogService.Search(c.Request.Context(), query)
	if err != nil {
		failCatalog(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func failCatalog(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownCourseType):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
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
