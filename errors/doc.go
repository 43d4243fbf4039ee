// Package errors provides the structured error type shared by rxkit
// packages.
//
// Stream failures carry plain Go errors through Completion. Library-level
// failures (cancelled waits, broker outages, invalid configuration) are
// reported as *AppError so callers can branch on Code and Retryable, and
// transports can render them with ToResponse.
package errors
