// Package analytics records answered questions to optional sinks.
// Sink failures never reach the caller: the Reporter logs and counts them.
package analytics

import (
	"context"
	"errors"
	"time"
)

// Event is one answered question.
type Event struct {
	ResponseText string    `json:"responseText"`
	QueryText    string    `json:"queryText"`
	RoutedTo     string    `json:"routedTo"` // routing label, e.g. DETERMINISTIC_DUE
	RequestID    string    `json:"requestId,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Sink receives analytics events.
type Sink interface {
	Record(ctx context.Context, ev Event) error
	// Name labels the sink in logs and metrics.
	Name() string
}

// SinkError attributes a failure to a sink.
type SinkError struct {
	Sink string
	Err  error
}

func (e *SinkError) Error() string {
	return e.Sink + ": " + e.Err.Error()
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// NopSink discards events. Used when no sink is configured.
type NopSink struct{}

// Record implements Sink.
func (NopSink) Record(context.Context, Event) error { return nil }

// Name implements Sink.
func (NopSink) Name() string { return "nop" }

type multiSink struct {
	sinks []Sink
}

// Multi fans an event out to every sink in order. All sinks are tried;
// failures are joined as *SinkError values. Multi with no sinks is a NopSink.
func Multi(sinks ...Sink) Sink {
	filtered := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	switch len(filtered) {
	case 0:
		return NopSink{}
	case 1:
		return filtered[0]
	}
	return &multiSink{sinks: filtered}
}

func (m *multiSink) Record(ctx context.Context, ev Event) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Record(ctx, ev); err != nil {
			errs = append(errs, &SinkError{Sink: s.Name(), Err: err})
		}
	}
	return errors.Join(errs...)
}

func (m *multiSink) Name() string {
	return "multi"
}

// sinkErrors flattens err into per-sink failures. Errors not attributed
// to a sink are labelled with fallback.
func sinkErrors(err error, fallback string) []*SinkError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*SinkError
		for _, e := range joined.Unwrap() {
			out = append(out, sinkErrors(e, fallback)...)
		}
		return out
	}
	var se *SinkError
	if errors.As(err, &se) {
		return []*SinkError{se}
	}
	return []*SinkError{{Sink: fallback, Err: err}}
}
