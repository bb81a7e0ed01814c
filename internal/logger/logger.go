// Package logger provides structured logging utilities for the application.
// It wraps log/slog with JSON formatting, enriches records with request
// values from the context and optionally ships them to Better Stack.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogbetterstack "github.com/samber/slog-betterstack"
)

// Logger is the application logger
type Logger struct {
	*slog.Logger
	async *AsyncHandler
}

// Options configures the handler chain built by Setup.
type Options struct {
	Level  string
	Writer io.Writer // defaults to os.Stdout

	// Better Stack shipping is enabled when Token is set.
	BetterstackToken    string
	BetterstackEndpoint string
	Async               AsyncOptions
}

// New creates a new logger instance with JSON formatting
func New(level string) *Logger {
	return Setup(Options{Level: level})
}

// NewWithWriter creates a new logger instance with JSON formatting writing to the provided writer
func NewWithWriter(level string, w io.Writer) *Logger {
	return Setup(Options{Level: level, Writer: w})
}

// Setup builds the handler chain: local JSON output plus, when a token is
// configured, asynchronous Better Stack shipping. Context values are added
// to every record before fan-out.
func Setup(opts Options) *Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	level := ParseLevel(opts.Level)

	handlers := []slog.Handler{slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: renameAttrs,
	})}

	var async *AsyncHandler
	if opts.BetterstackToken != "" {
		bs := slogbetterstack.Option{
			Level:    level,
			Token:    opts.BetterstackToken,
			Endpoint: opts.BetterstackEndpoint,
		}.NewBetterstackHandler()
		async = NewAsyncHandler(bs, opts.Async)
		handlers = append(handlers, async)
	}

	handler := NewContextHandler(NewMultiHandler(handlers...))
	return &Logger{Logger: slog.New(handler), async: async}
}

// ParseLevel maps a level name to slog.Level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// renameAttrs applies the log schema shared with the log pipeline:
// timestamp, lowercase level (WARN becomes "warning") and message.
func renameAttrs(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		a.Key = "timestamp"
	case slog.LevelKey:
		a.Key = "level"
		level := a.Value.String()
		if level == "WARN" {
			level = "warning"
		} else {
			level = strings.ToLower(level)
		}
		a.Value = slog.StringValue(level)
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{Logger: l.With(args...), async: l.async}
}

// WithModule creates a new entry with module field
func (l *Logger) WithModule(module string) *Logger {
	return l.with("module", module)
}

// WithRequestID creates a new entry with request ID field
func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.with("request_id", requestID)
}

// WithError creates a new entry with error field
func (l *Logger) WithError(err error) *Logger {
	return l.with("error", err)
}

// WithField creates a new entry with a single field
func (l *Logger) WithField(key string, value any) *Logger {
	return l.with(key, value)
}

// WithFields creates a new entry with multiple fields
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return l.with(args...)
}

// Infof logs a formatted message at info level.
func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted message at warn level.
func (l *Logger) Warnf(format string, args ...any) {
	l.Warn(fmt.Sprintf(format, args...))
}

// Shutdown flushes records still queued for remote shipping.
func (l *Logger) Shutdown(ctx context.Context) error {
	if l == nil || l.async == nil {
		return nil
	}
	return l.async.Shutdown(ctx)
}

// RemoteEnabled reports whether records are shipped to Better Stack.
func (l *Logger) RemoteEnabled() bool {
	return l != nil && l.async != nil
}
