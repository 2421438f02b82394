package serverutils

import (
	"fmt"
)

// AppError carries an HTTP status alongside a user-facing message and an
// optional details string with the underlying cause. API keys or other
// secrets must never be placed in Message or Details.
type AppError struct {
	Code    int
	Message string
	Details string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func NewAppErrorWithDetails(code int, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// BadRequest wraps a user-correctable failure (400).
func BadRequest(message string) *AppError {
	return NewAppError(400, message)
}

// UpstreamError wraps a failed call to the completion API (500).
// The upstream message is preserved in Details for diagnostics.
func UpstreamError(message string, cause error) *AppError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return NewAppErrorWithDetails(500, message, details)
}
