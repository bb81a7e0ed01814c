package logger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// AsyncOptions configures the queue in front of remote shipping.
type AsyncOptions struct {
	BufferSize   int           // queued records before new ones are dropped; 0 = 1024
	FlushTimeout time.Duration // Shutdown wait when ctx has no deadline; 0 = 5s
}

type queuedRecord struct {
	ctx     context.Context
	record  slog.Record
	handler slog.Handler
}

// shipper drains queued records on one goroutine. Handlers derived with
// WithAttrs/WithGroup share it.
type shipper struct {
	queue        chan queuedRecord
	flushTimeout time.Duration
	done         chan struct{}
	mu           sync.RWMutex // guards closed and the close of queue
	closed       bool
	dropped      atomic.Uint64
}

func startShipper(opts AsyncOptions) *shipper {
	if opts.BufferSize <= 0 {
		opts.BufferSize = 1024
	}
	if opts.FlushTimeout <= 0 {
		opts.FlushTimeout = 5 * time.Second
	}
	s := &shipper{
		queue:        make(chan queuedRecord, opts.BufferSize),
		flushTimeout: opts.FlushTimeout,
		done:         make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		for q := range s.queue {
			_ = q.handler.Handle(q.ctx, q.record)
		}
	}()
	return s
}

// offer queues a record without blocking. Full queue or closed shipper drops it.
func (s *shipper) offer(q queuedRecord) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.dropped.Add(1)
		return
	}
	select {
	case s.queue <- q:
	default:
		s.dropped.Add(1)
	}
}

func (s *shipper) stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.flushTimeout)
		defer cancel()
	}
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AsyncHandler hands records to a background goroutine so that slow remote
// log delivery never blocks a request.
type AsyncHandler struct {
	next    slog.Handler
	shipper *shipper
}

// NewAsyncHandler wraps next with a bounded queue.
func NewAsyncHandler(next slog.Handler, opts AsyncOptions) *AsyncHandler {
	return &AsyncHandler{next: next, shipper: startShipper(opts)}
}

// Enabled defers to the wrapped handler.
func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle queues a clone of r. It never returns an error.
func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.next.Enabled(ctx, r.Level) {
		h.shipper.offer(queuedRecord{ctx: ctx, record: r.Clone(), handler: h.next})
	}
	return nil
}

func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{next: h.next.WithAttrs(attrs), shipper: h.shipper}
}

func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{next: h.next.WithGroup(name), shipper: h.shipper}
}

// Dropped returns how many records were discarded because the queue was
// full or already shut down.
func (h *AsyncHandler) Dropped() uint64 {
	if h == nil {
		return 0
	}
	return h.shipper.dropped.Load()
}

// Shutdown stops accepting records and waits for the queue to drain.
// Safe to call more than once.
func (h *AsyncHandler) Shutdown(ctx context.Context) error {
	if h == nil || h.shipper == nil {
		return nil
	}
	return h.shipper.stop(ctx)
}
