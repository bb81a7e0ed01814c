// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates the caller sent a malformed request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingCredential indicates a required external credential is not configured.
	ErrMissingCredential = errors.New("missing credential")
)

// Request validation failures surfaced as 400 responses.
var (
	ErrInvalidJSON  = NewValidationError("body", "Invalid JSON")
	ErrMissingQuery = NewValidationError("query", "Missing query")
)

// ValidationError represents input validation failures.
// Message is safe to return to the caller verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ConfigError reports configuration that an operation needs but does not have.
type ConfigError struct {
	Key     string // environment key to set
	Message string // user-facing message
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error (%s): %s", e.Key, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewMissingCredentialError creates a ConfigError wrapping ErrMissingCredential.
func NewMissingCredentialError(key, message string) *ConfigError {
	return &ConfigError{
		Key:     key,
		Message: message,
		Err:     ErrMissingCredential,
	}
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput reports whether err is or wraps ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMissingCredential reports whether err is or wraps ErrMissingCredential.
func IsMissingCredential(err error) bool {
	return errors.Is(err, ErrMissingCredential)
}
