package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NoTimeLimit is the remaining-seconds sentinel for untimed papers.
const NoTimeLimit = -1

// TestPaper is an MCQ paper as served by the content API. Immutable once
// loaded for a session; the question payload never carries correct answers.
type TestPaper struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	TopicID          string     `json:"topicId,omitempty"`
	TimeLimitMinutes int        `json:"timeLimitMinutes,omitempty"`
	TotalMarks       string     `json:"totalMarks,omitempty"`
	Questions        []Question `json:"mcqs"`
}

// TimeLimitSeconds converts the paper's limit to a tick budget.
// Returns NoTimeLimit when the paper is untimed.
func (p *TestPaper) TimeLimitSeconds() int {
	if p.TimeLimitMinutes <= 0 {
		return NoTimeLimit
	}
	return p.TimeLimitMinutes * 60
}

// Question is a single MCQ. The answer key fields stay empty during a live
// attempt; they are only populated by the separate answer-key endpoint.
type Question struct {
	ID       string     `json:"id"`
	Question string     `json:"question"`
	Options  OptionList `json:"options"`
	Marks    int        `json:"marks,omitempty"`
}

// Option is one selectable choice of an MCQ.
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// OptionList is an ordered option-key → text mapping. The content API sends
// options as a JSON object whose member order is the display order, so a
// plain Go map would scramble it; OptionList keeps insertion order intact.
type OptionList []Option

// Get returns the text for an option key.
func (l OptionList) Get(key string) (string, bool) {
	for _, o := range l {
		if o.Key == key {
			return o.Text, true
		}
	}
	return "", false
}

// Has reports whether the key is a valid option of this question.
func (l OptionList) Has(key string) bool {
	_, ok := l.Get(key)
	return ok
}

// UnmarshalJSON decodes a JSON object into an OptionList, preserving the
// order in which members appear in the document.
func (l *OptionList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("options: expected JSON object, got %v", tok)
	}

	var out OptionList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("options: non-string key %v", keyTok)
		}

		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("options[%s]: %w", key, err)
		}
		out = append(out, Option{Key: key, Text: text})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = out
	return nil
}

// MarshalJSON encodes the OptionList back to a JSON object in display order.
func (l OptionList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, o := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(o.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(o.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AnswerKeyEntry is one row of the answer-key endpoint response.
type AnswerKeyEntry struct {
	ID          string `json:"id"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// AnswerKey maps question-id → correct option-key.
type AnswerKey map[string]AnswerKeyEntry

// BuildAnswerKey indexes the answer-key endpoint rows by question id.
func BuildAnswerKey(entries []AnswerKeyEntry) AnswerKey {
	key := make(AnswerKey, len(entries))
	for _, e := range entries {
		key[e.ID] = e
	}
	return key
}
