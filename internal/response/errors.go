package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Device auth ───────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"
	ErrTokenExpired  ErrCode = "TOKEN_EXPIRED"
	ErrNotOwner      ErrCode = "NOT_SESSION_OWNER"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Content loading ───────────────────────────────────────────────
	ErrNotFound            ErrCode = "NOT_FOUND"
	ErrUpstreamUnavailable ErrCode = "UPSTREAM_UNAVAILABLE"

	// ─── Test sessions ─────────────────────────────────────────────────
	ErrSessionNotFound      ErrCode = "SESSION_NOT_FOUND"
	ErrSessionEnded         ErrCode = "SESSION_ENDED"
	ErrSessionNotEnded      ErrCode = "SESSION_NOT_ENDED"
	ErrSessionInitialized   ErrCode = "SESSION_ALREADY_INITIALIZED"
	ErrNotCurrentQuestion   ErrCode = "NOT_CURRENT_QUESTION"
	ErrIndexOutOfRange      ErrCode = "INDEX_OUT_OF_RANGE"
	ErrUnknownOption        ErrCode = "UNKNOWN_OPTION"
	ErrAnswerKeyUnavailable ErrCode = "ANSWER_KEY_UNAVAILABLE"
	ErrResultNotCompilable  ErrCode = "RESULT_NOT_COMPILABLE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Device auth ───────────────────────────────────────────────────
	case ErrTokenRequired:
		return "A device token is required."
	case ErrTokenInvalid:
		return "The device token is invalid."
	case ErrTokenExpired:
		return "The device token has expired. Please register again."
	case ErrNotOwner:
		return "This session belongs to another device."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The identifier format is invalid."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Content loading ───────────────────────────────────────────────
	case ErrNotFound:
		return "The requested content was not found."
	case ErrUpstreamUnavailable:
		return "The content service is unreachable. Please try again."

	// ─── Test sessions ─────────────────────────────────────────────────
	case ErrSessionNotFound:
		return "No such test session."
	case ErrSessionEnded:
		return "The test session has already ended."
	case ErrSessionNotEnded:
		return "The test session is still in progress."
	case ErrSessionInitialized:
		return "The test session was already initialized."
	case ErrNotCurrentQuestion:
		return "The answer does not target the current question."
	case ErrIndexOutOfRange:
		return "The question index is out of range."
	case ErrUnknownOption:
		return "The selected option does not exist for this question."
	case ErrAnswerKeyUnavailable:
		return "The answer key could not be fetched. Your answers are kept; please retry."
	case ErrResultNotCompilable:
		return "No result can be produced for a dismissed attempt."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
