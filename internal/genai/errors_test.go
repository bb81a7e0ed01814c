package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/genai"
)

func TestWrapError(t *testing.T) {
	t.Parallel()

	if WrapError(nil, ProviderOpenAI) != nil {
		t.Fatal("WrapError(nil) should be nil")
	}

	base := errors.New("boom")
	err := WrapError(base, ProviderGemini)

	var llmErr *LLMError
	if !errors.As(err, &llmErr) {
		t.Fatalf("expected *LLMError, got %T", err)
	}
	if llmErr.Provider != ProviderGemini {
		t.Errorf("Provider = %q, want gemini", llmErr.Provider)
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error should unwrap to base")
	}
	if got := err.Error(); got != "gemini: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestLLMError_ErrorIncludesStatus(t *testing.T) {
	t.Parallel()
	err := &LLMError{Err: errors.New("bad"), StatusCode: 502, Provider: ProviderOpenAI}
	if got := err.Error(); got != "openai: bad (status: 502)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestStatusCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain error", errors.New("x"), 0},
		{"llm error", &LLMError{Err: errors.New("x"), StatusCode: 429}, 429},
		{"genai api error", genai.APIError{Code: 503, Message: "unavailable"}, 503},
		{"wrapped genai api error", fmt.Errorf("call: %w", genai.APIError{Code: 400}), 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, true},
		{"429", &LLMError{Err: errors.New("rate"), StatusCode: http.StatusTooManyRequests}, true},
		{"500", &LLMError{Err: errors.New("server"), StatusCode: http.StatusInternalServerError}, true},
		{"400", &LLMError{Err: errors.New("bad"), StatusCode: http.StatusBadRequest}, false},
		{"401", &LLMError{Err: errors.New("auth"), StatusCode: http.StatusUnauthorized}, false},
		{"network", errors.New("connection reset"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient() = %v, want %v", got, tt.want)
			}
		})
	}
}
