package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorFetch    = 2   // Indicates the fetch ended in a FetchError.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// FetchError is the single failure kind of a fetch. It covers transport,
// DNS, TLS and protocol errors as well as malformed URLs and body read
// failures. HTTP error statuses are not FetchErrors.
type FetchError struct {
	// URL is the target of the failed request.
	URL string
	// Cause is the underlying error reported by the network layer.
	Cause error
}

// Error returns the description of the underlying cause.
func (e *FetchError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("fetch %s failed", e.URL)
	}
	return e.Cause.Error()
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e *FetchError) Unwrap() error { return e.Cause }

// NewFetchError wraps cause as a FetchError for url.
//
// Parameters:
//   - url: The URL of the request that failed.
//   - cause: The underlying network or protocol error.
//
// Returns:
//   - *FetchError: The new error. Its message is the message of cause.
func NewFetchError(url string, cause error) *FetchError {
	return &FetchError{URL: url, Cause: cause}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if err is or wraps context.Canceled or context.DeadlineExceeded.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
