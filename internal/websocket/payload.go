package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing   Action = "ping"
	ActionAnswer Action = "answer"
)

// RequestPayload is the single client message shape; Action discriminates.
type RequestPayload struct {
	Action Action `json:"action"`
	QID    string `json:"q_id,omitempty"`
	Answer string `json:"ans,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError Event = "error"
	EventTick  Event = "tick"
	EventEnded Event = "ended"
	EventSaved Event = "saved"
	EventPong  Event = "pong"
)

// TickResponse streams the countdown once per second.
type TickResponse struct {
	Event            Event `json:"event"`
	RemainingSeconds int   `json:"remaining_seconds"`
}

// EndedResponse announces the terminal transition with its cause.
type EndedResponse struct {
	Event  Event  `json:"event"`
	Reason string `json:"reason"`
}

// SavedResponse acknowledges an answer action.
type SavedResponse struct {
	Event Event  `json:"event"`
	QID   string `json:"q_id"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
