package genai

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// LLMError is the service error returned by every Completer.
type LLMError struct {
	Err        error
	StatusCode int
	Provider   Provider
}

// Error implements the error interface.
func (e *LLMError) Error() string {
	msg := string(e.Provider) + ": " + e.Err.Error()
	if e.StatusCode > 0 {
		msg += " (status: " + strconv.Itoa(e.StatusCode) + ")"
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *LLMError) Unwrap() error {
	return e.Err
}

// WrapError wraps an SDK error with provider and status code information.
// The status code is read from the SDK error types when present.
func WrapError(err error, provider Provider) error {
	if err == nil {
		return nil
	}
	return &LLMError{
		Err:        err,
		StatusCode: StatusCode(err),
		Provider:   provider,
	}
}

// StatusCode extracts the HTTP status from an openai-go or genai error.
// Returns 0 if the error carries none.
func StatusCode(err error) int {
	var llmErr *LLMError
	if errors.As(err, &llmErr) && llmErr.StatusCode > 0 {
		return llmErr.StatusCode
	}
	var oaiErr *openai.Error
	if errors.As(err, &oaiErr) {
		return oaiErr.StatusCode
	}
	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	var gErrPtr *genai.APIError
	if errors.As(err, &gErrPtr) && gErrPtr != nil {
		return gErrPtr.Code
	}
	return 0
}

// IsTransient reports whether err is a rate limit, timeout or server error,
// i.e. the same call may succeed later. Used for metrics labels only.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	return isTransient(err, StatusCode(err))
}

func isTransient(err error, status int) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch {
	case status == http.StatusTooManyRequests,
		status == http.StatusRequestTimeout,
		status == http.StatusConflict:
		return true
	case status >= 500 && status < 600:
		return true
	case status >= 400 && status < 500:
		return false
	}
	// No status: network-level failure.
	return status == 0
}
