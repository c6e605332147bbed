package content

import "errors"

// Load errors. Each is distinguishable via errors.Is so callers can pick a
// retry-vs-fatal presentation.
var (
	// ErrInvalidID means the caller supplied an empty identifier.
	ErrInvalidID = errors.New("invalid content identifier")

	// ErrNotFound means the upstream has no such resource.
	ErrNotFound = errors.New("content not found")

	// ErrUpstream wraps transport, decode, and non-404 upstream failures.
	// All of them are retryable.
	ErrUpstream = errors.New("content api unavailable")
)
