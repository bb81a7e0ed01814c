// Package config provides centralized timeout constants for the application.
//
// The answer pipeline itself enforces no deadlines. These values only bound
// the HTTP server, SQLite and background work around it.
package config

import "time"

// HTTP server timeouts
const (
	// HTTPRead is the server read timeout. Requests are small JSON bodies.
	HTTPRead = 10 * time.Second

	// HTTPWrite is the server write timeout. It has to cover a full
	// completion round trip on the generative path.
	HTTPWrite = 120 * time.Second

	// HTTPIdle is the idle timeout for keep-alive connections.
	HTTPIdle = 120 * time.Second
)

// Database timeouts
const (
	// DatabaseBusyTimeout is SQLite busy_timeout pragma value.
	DatabaseBusyTimeout = 5 * time.Second

	// DatabaseConnMaxLifetime is the maximum lifetime of database connections.
	DatabaseConnMaxLifetime = time.Hour
)

// Document source
const (
	// DocumentRecheckInterval is how long a loaded syllabus is served before
	// its source version is checked again.
	DocumentRecheckInterval = 30 * time.Second
)

// Shutdown
const (
	// GracefulShutdown is the default time allowed for in-flight requests.
	GracefulShutdown = 15 * time.Second

	// SentryFlush bounds how long shutdown waits for buffered error events.
	SentryFlush = 2 * time.Second
)
