// Package notification decodes push payloads into a closed set of typed
// variants and decides which screen each one opens. Payload shapes from the
// push collaborator are duck-typed JSON; everything unrecognized lands in
// Unknown rather than being indexed dynamically.
package notification

import "encoding/json"

// Kind is the payload discriminator carried in the "type" field.
type Kind string

const (
	KindNewTest      Kind = "new_test"
	KindNewNote      Kind = "new_note"
	KindNewVideo     Kind = "new_video"
	KindAnnouncement Kind = "announcement"
	KindUnknown      Kind = "unknown"
)

// Route names the screen a notification opens, with its parameters.
type Route struct {
	Screen string            `json:"screen"`
	Params map[string]string `json:"params,omitempty"`
}

// Payload is one decoded push payload variant.
type Payload interface {
	Kind() Kind
	// Route returns the navigation target for a tap on this notification.
	Route() Route
}

// NewTest announces a freshly published test paper.
type NewTest struct {
	TestPaperID string `json:"testPaperId"`
	TopicID     string `json:"topicId,omitempty"`
}

func (p NewTest) Kind() Kind { return KindNewTest }

func (p NewTest) Route() Route {
	return Route{Screen: "testlistpage", Params: map[string]string{"testPaperId": p.TestPaperID, "topicId": p.TopicID}}
}

// NewNote announces a new PDF note.
type NewNote struct {
	NoteID  string `json:"noteId"`
	TopicID string `json:"topicId,omitempty"`
}

func (p NewNote) Kind() Kind { return KindNewNote }

func (p NewNote) Route() Route {
	return Route{Screen: "pdfviewerpage", Params: map[string]string{"noteId": p.NoteID}}
}

// NewVideo announces a new video lecture.
type NewVideo struct {
	VideoNoteID string `json:"videoNoteId"`
	TopicID     string `json:"topicId,omitempty"`
}

func (p NewVideo) Kind() Kind { return KindNewVideo }

func (p NewVideo) Route() Route {
	return Route{Screen: "videoplayer", Params: map[string]string{"videoNoteId": p.VideoNoteID}}
}

// Announcement is a broadcast with no deep link; it opens the notification
// list.
type Announcement struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

func (p Announcement) Kind() Kind { return KindAnnouncement }

func (p Announcement) Route() Route {
	return Route{Screen: "notifications"}
}

// Unknown is the explicit fallback for payload types this build does not
// know. The raw document is preserved for the history record.
type Unknown struct {
	Raw json.RawMessage `json:"raw"`
}

func (p Unknown) Kind() Kind { return KindUnknown }

func (p Unknown) Route() Route {
	return Route{Screen: "notifications"}
}

// Decode parses a raw push payload into its typed variant. Malformed or
// unrecognized documents decode to Unknown; routing always succeeds.
func Decode(raw []byte) Payload {
	var probe struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Unknown{Raw: append(json.RawMessage(nil), raw...)}
	}

	switch probe.Type {
	case KindNewTest:
		var p NewTest
		if err := json.Unmarshal(raw, &p); err == nil && p.TestPaperID != "" {
			return p
		}
	case KindNewNote:
		var p NewNote
		if err := json.Unmarshal(raw, &p); err == nil && p.NoteID != "" {
			return p
		}
	case KindNewVideo:
		var p NewVideo
		if err := json.Unmarshal(raw, &p); err == nil && p.VideoNoteID != "" {
			return p
		}
	case KindAnnouncement:
		var p Announcement
		if err := json.Unmarshal(raw, &p); err == nil {
			return p
		}
	}

	return Unknown{Raw: append(json.RawMessage(nil), raw...)}
}
