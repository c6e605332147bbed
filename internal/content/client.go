package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prepdex/prepdex-backend/internal/model"
	"github.com/rs/zerolog"
)

// envelope is the upstream CMS response wrapper: {success, error, data}.
type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Client is a read-only HTTP client for the content CMS API. All calls are
// idempotent GETs, safe to retry.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a content API client.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "content_client").Logger(),
	}
}

// get fetches a path and decodes the envelope's data into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: decode envelope (status %d): %v", ErrUpstream, res.StatusCode, err)
	}

	if !env.Success || res.StatusCode >= 400 {
		if res.StatusCode == http.StatusNotFound || strings.EqualFold(strings.TrimSpace(env.Error), "not found") {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		msg := env.Error
		if msg == "" {
			msg = res.Status
		}
		return fmt.Errorf("%w: %s", ErrUpstream, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %v", ErrUpstream, err)
	}
	return nil
}

// TestPaper fetches a paper with its questions. The payload never includes
// correct answers; those come from AnswerKey after the attempt ends.
func (c *Client) TestPaper(ctx context.Context, testID string) (*model.TestPaper, error) {
	if strings.TrimSpace(testID) == "" {
		return nil, fmt.Errorf("%w: empty test id", ErrInvalidID)
	}

	var paper model.TestPaper
	if err := c.get(ctx, "/api/testpapers/test/"+url.PathEscape(testID), &paper); err != nil {
		return nil, err
	}
	return &paper, nil
}

// AnswerKey fetches the correct answers and explanations for a paper.
// Called only once a session has ended.
func (c *Client) AnswerKey(ctx context.Context, testID string) (model.AnswerKey, error) {
	if strings.TrimSpace(testID) == "" {
		return nil, fmt.Errorf("%w: empty test id", ErrInvalidID)
	}

	var entries []model.AnswerKeyEntry
	if err := c.get(ctx, "/api/testpapers/test/"+url.PathEscape(testID)+"/answers", &entries); err != nil {
		return nil, err
	}
	return model.BuildAnswerKey(entries), nil
}

// TopicsByCourse lists topics under a course track.
func (c *Client) TopicsByCourse(ctx context.Context, courseType model.CourseType) ([]model.Topic, error) {
	var topics []model.Topic
	err := c.get(ctx, "/api/courses/"+url.PathEscape(string(courseType))+"/topics", &topics)
	return topics, err
}

// TestPapersByTopic lists a topic's papers without questions.
func (c *Client) TestPapersByTopic(ctx context.Context, topicID string) ([]model.TestPaperSummary, error) {
	if strings.TrimSpace(topicID) == "" {
		return nil, fmt.Errorf("%w: empty topic id", ErrInvalidID)
	}
	var papers []model.TestPaperSummary
	err := c.get(ctx, "/api/topics/"+url.PathEscape(topicID)+"/testpapers", &papers)
	return papers, err
}

// NotesByTopic lists PDF notes for a topic, optionally filtered by type.
func (c *Client) NotesByTopic(ctx context.Context, topicID, noteType string) ([]model.Note, error) {
	if strings.TrimSpace(topicID) == "" {
		return nil, fmt.Errorf("%w: empty topic id", ErrInvalidID)
	}
	if noteType == "" {
		noteType = "all"
	}
	var notes []model.Note
	err := c.get(ctx, "/api/notes/topic/"+url.PathEscape(topicID)+"?type="+url.QueryEscape(noteType), &notes)
	return notes, err
}

// VideoNotesByTopic lists video lectures for a topic.
func (c *Client) VideoNotesByTopic(ctx context.Context, topicID, videoType string) ([]model.VideoNote, error) {
	if strings.TrimSpace(topicID) == "" {
		return nil, fmt.Errorf("%w: empty topic id", ErrInvalidID)
	}
	if videoType == "" {
		videoType = "all"
	}
	var videos []model.VideoNote
	err := c.get(ctx, "/api/videonotes/topic/"+url.PathEscape(topicID)+"?type="+url.QueryEscape(videoType), &videos)
	return videos, err
}

// NewlyAdded fetches the home-screen feed of recently published content.
func (c *Client) NewlyAdded(ctx context.Context) ([]model.NewlyAdded, error) {
	var items []model.NewlyAdded
	err := c.get(ctx, "/api/newlyadded", &items)
	return items, err
}

// Search queries all content kinds at once.
func (c *Client) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidID)
	}
	var result model.SearchResult
	if err := c.get(ctx, "/api/search?query="+url.QueryEscape(query), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
