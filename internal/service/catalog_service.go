package service

import (
	"context"
	"errors"

	"github.com/prepdex/prepdex-backend/internal/content"
	"github.com/prepdex/prepdex-backend/internal/model"
)

// ErrUnknownCourseType rejects course identifiers outside the known tracks.
var ErrUnknownCourseType = errors.New("unknown course type")

// CatalogService is the read-only passthrough over the content CMS. The
// backend adds no storage here; it validates input and forwards.
type CatalogService struct {
	client *content.Client
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(client *content.Client) *CatalogService {
	return &CatalogService{client: client}
}

// TopicsByCourse lists topics under a course track.
func (s *CatalogService) TopicsByCourse(ctx context.Context, courseType model.CourseType) ([]model.Topic, error) {
	if !courseType.Valid() {
		return nil, ErrUnknownCourseType
	}
	return s.client.TopicsByCourse(ctx, courseType)
}

// TestPapersByTopic lists a topic's papers.
func (s *CatalogService) TestPapersByTopic(ctx context.Context, topicID string) ([]model.TestPaperSummary, error) {
	return s.client.TestPapersByTopic(ctx, topicID)
}

// NotesByTopic lists a topic's PDF notes.
func (s *CatalogService) NotesByTopic(ctx context.Context, topicID, noteType string) ([]model.Note, error) {
	return s.client.NotesByTopic(ctx, topicID, noteType)
}

// VideoNotesByTopic lists a topic's video lectures.
func (s *CatalogService) VideoNotesByTopic(ctx context.Context, topicID, videoType string) ([]model.VideoNote, error) {
	return s.client.VideoNotesByTopic(ctx, topicID, videoType)
}

// NewlyAdded fetches the home-screen feed.
func (s *CatalogService) NewlyAdded(ctx context.Context) ([]model.NewlyAdded, error) {
	return s.client.NewlyAdded(ctx)
}

// Search queries all content kinds.
func (s *CatalogService) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	return s.client.Search(ctx, query)
}
