// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	requestIDKey contextKey = "ctxutil.requestID"
	routeKey     contextKey = "ctxutil.route"
)

// WithRequestID adds a request ID to the context for tracing.
// Request ID is generated per /api/ask call for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and true if found, empty string and false otherwise.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}

// WithRoute records the answer route label chosen for the request.
func WithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey, route)
}

// GetRoute retrieves the route label from the context.
// Returns empty string if not set.
func GetRoute(ctx context.Context) string {
	if v := ctx.Value(routeKey); v != nil {
		if route, ok := v.(string); ok && route != "" {
			return route
		}
	}
	return ""
}

// PreserveTracing creates a detached context that keeps only tracing values.
// The new context is independent of the parent's cancellation and deadlines.
//
// Used for analytics writes that must finish even when the client has
// already disconnected.
func PreserveTracing(ctx context.Context) context.Context {
	newCtx := context.Background()

	if requestID, ok := GetRequestID(ctx); ok && requestID != "" {
		newCtx = WithRequestID(newCtx, requestID)
	}
	if route := GetRoute(ctx); route != "" {
		newCtx = WithRoute(newCtx, route)
	}

	return newCtx
}
