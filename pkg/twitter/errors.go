package twitter

import "fmt"

// ErrorType classifies upstream API failures.
type ErrorType string

const (
	ErrorTypeNetwork   ErrorType = "network"
	ErrorTypeRateLimit ErrorType = "rate_limit"
	ErrorTypeAuth      ErrorType = "auth"
	ErrorTypeParsing   ErrorType = "parsing"
	ErrorTypeNotFound  ErrorType = "not_found"
	ErrorTypeServer    ErrorType = "server_error"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// Error represents a classified upstream API error.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("twitter %s error (code %d): %s", e.Type, e.Code, e.Message)
}

// IsTransient reports whether an error type is worth retrying. Rate limits are
// deliberately excluded; the query engine terminates gracefully on those
// instead of hammering the upstream.
func IsTransient(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeNetwork, ErrorTypeServer:
		return true
	default:
		return false
	}
}
