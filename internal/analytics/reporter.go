package analytics

import (
	"context"
	"time"

	"github.com/garyellow/syllabus-assistant-go/internal/ctxutil"
	"github.com/garyellow/syllabus-assistant-go/internal/logger"
	"github.com/garyellow/syllabus-assistant-go/internal/metrics"
)

// Reporter sends events to a sink and swallows failures.
type Reporter struct {
	sink    Sink
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewReporter creates a reporter. A nil sink disables reporting.
func NewReporter(sink Sink, log *logger.Logger, m *metrics.Metrics) *Reporter {
	if sink == nil {
		sink = NopSink{}
	}
	return &Reporter{sink: sink, logger: log.WithModule("analytics"), metrics: m}
}

// Enabled reports whether any real sink is configured.
func (r *Reporter) Enabled() bool {
	_, nop := r.sink.(NopSink)
	return !nop
}

// Report records ev. It never fails; sink errors are logged and counted.
func (r *Reporter) Report(ctx context.Context, ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	if ev.RequestID == "" {
		ev.RequestID, _ = ctxutil.GetRequestID(ctx)
	}

	err := r.sink.Record(ctx, ev)
	for _, se := range sinkErrors(err, r.sink.Name()) {
		r.metrics.RecordAnalyticsError(se.Sink)
		r.logger.WithError(se.Err).
			WithField("sink", se.Sink).
			WithField("routed_to", ev.RoutedTo).
			WarnContext(ctx, "Analytics sink failed")
	}
}
