package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/garyellow/syllabus-assistant-go/internal/ctxutil"
)

func TestContextHandler_Handle(t *testing.T) {
	tests := []struct {
		name           string
		setupContext   func(context.Context) context.Context
		expectedFields map[string]string
	}{
		{
			name: "extracts all context values",
			setupContext: func(ctx context.Context) context.Context {
				ctx = ctxutil.WithRequestID(ctx, "req-abc-123")
				ctx = ctxutil.WithRoute(ctx, "DETERMINISTIC_DUE")
				return ctx
			},
			expectedFields: map[string]string{
				"request_id": "req-abc-123",
				"route":      "DETERMINISTIC_DUE",
			},
		},
		{
			name: "extracts partial context values",
			setupContext: func(ctx context.Context) context.Context {
				return ctxutil.WithRequestID(ctx, "req-1")
			},
			expectedFields: map[string]string{
				"request_id": "req-1",
			},
		},
		{
			name: "handles empty context",
			setupContext: func(ctx context.Context) context.Context {
				return ctx
			},
			expectedFields: map[string]string{},
		},
		{
			name: "skips empty string values",
			setupContext: func(ctx context.Context) context.Context {
				ctx = ctxutil.WithRequestID(ctx, "")
				ctx = ctxutil.WithRoute(ctx, "MODEL")
				return ctx
			},
			expectedFields: map[string]string{
				"route": "MODEL",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewContextHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))
			logger := slog.New(handler)

			logger.InfoContext(tt.setupContext(context.Background()), "test message")
			output := buf.String()

			for key, value := range tt.expectedFields {
				expectedJSON := `"` + key + `":"` + value + `"`
				if !strings.Contains(output, expectedJSON) {
					t.Errorf("Expected field %s=%s not found in output: %s", key, value, output)
				}
			}
			for _, field := range []string{"request_id", "route"} {
				if _, want := tt.expectedFields[field]; !want && strings.Contains(output, `"`+field+`"`) {
					t.Errorf("Unexpected field %s found in output: %s", field, output)
				}
			}
		})
	}
}

func TestContextHandler_Enabled(t *testing.T) {
	handler := NewContextHandler(slog.NewJSONHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	ctx := context.Background()

	tests := []struct {
		name     string
		level    slog.Level
		expected bool
	}{
		{"debug below threshold", slog.LevelDebug, false},
		{"info at threshold", slog.LevelInfo, true},
		{"error above threshold", slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := handler.Enabled(ctx, tt.level); got != tt.expected {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestContextHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	handler := NewContextHandler(slog.NewJSONHandler(&buf, nil))

	logger := slog.New(handler.WithAttrs([]slog.Attr{slog.String("service", "assistant")}).WithGroup("ask"))
	logger.InfoContext(ctxutil.WithRequestID(context.Background(), "req-9"), "answered", "chars", 42)

	output := buf.String()
	for _, want := range []string{`"service":"assistant"`, `"ask":{`, `"chars":42`, `"request_id":"req-9"`} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %s in output: %s", want, output)
		}
	}
}
