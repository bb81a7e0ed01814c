// Package sentry initializes error reporting for failed answers.
// Events go to any Sentry-compatible ingest, including Better Stack Errors.
package sentry

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds error reporting configuration.
// Either DSN or Token+Host enables reporting; DSN wins when both are set.
type Config struct {
	// DSN is a complete Sentry DSN.
	DSN string

	// Token and Host build a Better Stack DSN: https://$TOKEN@$HOST/1
	Token string
	Host  string

	Environment string
	Release     string

	// SampleRate controls error sampling (0.0-1.0, default 1.0).
	SampleRate float64

	Debug bool
}

// Enabled reports whether the config carries a destination.
func (c Config) Enabled() bool {
	return c.DSN != "" || c.Token != ""
}

// BuildDSN returns the DSN to report to, or "" when reporting is disabled.
func BuildDSN(cfg Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	if cfg.Token == "" {
		return "", nil
	}
	if cfg.Host == "" {
		return "", fmt.Errorf("sentry host is required when token is provided")
	}
	// The project ID is required by the SDK but ignored by Better Stack.
	return fmt.Sprintf("https://%s@%s/1", cfg.Token, cfg.Host), nil
}

// Initialize sets up the Sentry SDK.
// Reporting stays disabled and nil is returned when no destination is configured.
func Initialize(cfg Config) error {
	dsn, err := BuildDSN(cfg)
	if err != nil || dsn == "" {
		return err
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       sampleRate,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
	})
}

// Flush waits for buffered events to be sent.
// Returns true if all events were sent within the timeout.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// IsEnabled returns true if Sentry is initialized and active.
func IsEnabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// CaptureException reports err with the hub bound to ctx (set by the
// HTTP middleware), falling back to the global hub. Tags are attached to
// this event only.
func CaptureException(ctx context.Context, err error, tags map[string]string) {
	if err == nil {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		hub.CaptureException(err)
	})
}
