package session

import "errors"

// State-machine errors. These indicate wiring defects in the caller rather
// than recoverable conditions; handlers surface them loudly instead of
// swallowing them.
var (
	// ErrAlreadyInitialized is returned when Initialize is called twice.
	ErrAlreadyInitialized = errors.New("session already initialized")

	// ErrNotActive rejects mutations on LOADING or ENDED sessions.
	ErrNotActive = errors.New("session is not active")

	// ErrNotCurrentQuestion rejects an answer aimed at a question other than
	// the current one (stale UI callback).
	ErrNotCurrentQuestion = errors.New("answer targets a non-current question")

	// ErrIndexOutOfRange rejects a jump outside the question range.
	ErrIndexOutOfRange = errors.New("question index out of range")

	// ErrUnknownOption rejects an option key the current question lacks.
	ErrUnknownOption = errors.New("unknown option key")
)
