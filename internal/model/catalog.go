package model

import (
	"strings"
	"time"
)

// CourseType enumerates the two course tracks the content API serves.
type CourseType string

const (
	CourseTypeCAInter CourseType = "CAInter"
	CourseTypeCAFinal CourseType = "CAFinal"
)

// Valid reports whether the course type is one the API knows about.
func (c CourseType) Valid() bool {
	return c == CourseTypeCAInter || c == CourseTypeCAFinal
}

// ParseCourseType resolves a course track from URL input. The upstream CMS
// expects the mixed-case spellings, so matching is case-insensitive here
// and the canonical constant is returned.
func ParseCourseType(s string) (CourseType, bool) {
	switch strings.ToLower(s) {
	case "cainter":
		return CourseTypeCAInter, true
	case "cafinal":
		return CourseTypeCAFinal, true
	}
	return CourseType(s), false
}

// Topic groups test papers, notes and videos under a course.
type Topic struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	CourseID       string     `json:"courseId"`
	CourseType     CourseType `json:"courseType"`
	TestPaperCount int        `json:"testPaperCount"`
}

// TestPaperSummary is a paper as listed in a topic (no questions attached).
type TestPaperSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	TimeLimitMinutes int    `json:"timeLimitMinutes,omitempty"`
	TotalMarks       string `json:"totalMarks,omitempty"`
	TopicID          string `json:"topicId"`
	MCQCount         int    `json:"mcqCount"`
}

// Note is a PDF study note; the app only needs the CMS URL.
type Note struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	PDFURL  string `json:"pdfUrl"`
	TopicID string `json:"topicId"`
}

// VideoNote is a video lecture reference.
type VideoNote struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	VideoURL string `json:"videoUrl"`
	TopicID  string `json:"topicId,omitempty"`
}

// NewlyAdded is one entry of the home-screen "newly added" feed.
type NewlyAdded struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // testpaper | note | video
	Name      string    `json:"name"`
	TopicID   string    `json:"topicId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SearchResult aggregates matches across content kinds.
type SearchResult struct {
	Topics     []Topic            `json:"topics"`
	TestPapers []TestPaperSummary `json:"testPapers"`
	Notes      []Note             `json:"notes"`
	Videos     []VideoNote        `json:"videos"`
}
