package ctxutil

import (
	"context"
	"testing"
	"time"
)

func TestRequestID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	if _, ok := GetRequestID(ctx); ok {
		t.Error("GetRequestID() on empty context should return false")
	}

	ctx = WithRequestID(ctx, "req-123")
	got, ok := GetRequestID(ctx)
	if !ok || got != "req-123" {
		t.Errorf("GetRequestID() = %q, %v, want %q, true", got, ok, "req-123")
	}
}

func TestRoute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	if got := GetRoute(ctx); got != "" {
		t.Errorf("GetRoute() on empty context = %q, want empty", got)
	}
	if got := GetRoute(WithRoute(ctx, "DETERMINISTIC_DUE")); got != "DETERMINISTIC_DUE" {
		t.Errorf("GetRoute() = %q, want %q", got, "DETERMINISTIC_DUE")
	}
}

func TestPreserveTracing(t *testing.T) {
	t.Parallel()
	parent, cancel := context.WithTimeout(context.Background(), time.Minute)
	parent = WithRequestID(parent, "req-1")
	parent = WithRoute(parent, "MODEL")
	cancel()

	detached := PreserveTracing(parent)
	if detached.Err() != nil {
		t.Error("detached context should not inherit cancellation")
	}
	if _, ok := detached.Deadline(); ok {
		t.Error("detached context should not inherit deadline")
	}
	if id, _ := GetRequestID(detached); id != "req-1" {
		t.Errorf("request ID = %q, want %q", id, "req-1")
	}
	if route := GetRoute(detached); route != "MODEL" {
		t.Errorf("route = %q, want %q", route, "MODEL")
	}
}
