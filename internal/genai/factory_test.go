package genai

import (
	"context"
	"strings"
	"testing"
)

func TestNewCompleter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cfg      Config
		wantNil  bool
		wantErr  string
		provider Provider
	}{
		{"openai without key", Config{Provider: ProviderOpenAI, Model: "gpt-4o-mini"}, true, "", ""},
		{"gemini without key", Config{Provider: ProviderGemini, Model: "gemini-2.5-flash"}, true, "", ""},
		{"openai with key", Config{Provider: ProviderOpenAI, APIKey: "k", Model: "gpt-4o-mini"}, false, "", ProviderOpenAI},
		{"default provider", Config{APIKey: "k", Model: "gpt-4o-mini"}, false, "", ProviderOpenAI},
		{"gemini with key", Config{Provider: ProviderGemini, APIKey: "k", Model: "gemini-2.5-flash"}, false, "", ProviderGemini},
		{"unknown provider", Config{Provider: "mistral", APIKey: "k", Model: "m"}, true, "unsupported provider", ""},
		{"missing model", Config{Provider: ProviderOpenAI, APIKey: "k"}, true, "model is required", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := NewCompleter(context.Background(), tt.cfg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if c != nil {
					t.Errorf("expected nil completer, got %T", c)
				}
				return
			}
			if c == nil {
				t.Fatal("expected completer")
			}
			if c.Provider() != tt.provider {
				t.Errorf("Provider() = %q, want %q", c.Provider(), tt.provider)
			}
			_ = c.Close()
		})
	}
}

func TestSystemPrompt(t *testing.T) {
	t.Parallel()
	got := SystemPrompt("\n## Grading\nQuiz 10%\n")
	if !strings.Contains(got, "## Grading\nQuiz 10%\n--- END SYLLABUS EXCERPT ---") {
		t.Errorf("SystemPrompt() = %q", got)
	}
	if !strings.HasPrefix(got, "You are the course assistant") {
		t.Errorf("unexpected prefix: %q", got[:40])
	}
}
