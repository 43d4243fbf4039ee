package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Lifecycle errors
const (
	// ErrCodeCancelled indicates a subscription was cancelled before completion.
	ErrCodeCancelled ErrorCode = "CANCELLED"
	// ErrCodeTimeout indicates a wait on a stream exceeded its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Source errors (retryable)
const (
	// ErrCodeServiceUnavailable indicates a broker or remote source is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeConnectionFailed indicates a failed connection to a remote source.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeUpstreamFailure indicates an upstream publisher completed with a failure.
	ErrCodeUpstreamFailure ErrorCode = "UPSTREAM_FAILURE"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeConnectionFailed:   true,
	ErrCodeTimeout:            true,
	ErrCodeUpstreamFailure:    true,
	ErrCodeCancelled:          false,
	ErrCodeInternal:           false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
