// Package metrics defines the Prometheus metrics exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Request metrics
	RequestsTotal          *prometheus.CounterVec
	RequestDurationSeconds *prometheus.HistogramVec

	// Pipeline metrics
	ExtractionTotal           *prometheus.CounterVec
	CompletionDurationSeconds *prometheus.HistogramVec

	// Analytics metrics
	AnalyticsErrorsTotal *prometheus.CounterVec

	// Document metrics
	DocumentLoadsTotal *prometheus.CounterVec
	DocumentSections   prometheus.Gauge

	// Singleflight metrics
	SingleflightDedupTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_requests_total",
				Help: "Total number of /api/ask requests by route label and status",
			},
			[]string{"route", "status"}, // status: success, invalid, limited, error
		),

		RequestDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_request_duration_seconds",
				Help:    "End-to-end /api/ask duration in seconds by route label",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"route"},
		),

		ExtractionTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_extraction_total",
				Help: "Deterministic extraction attempts by result",
			},
			[]string{"result"}, // result: hit, miss, no_sections
		),

		CompletionDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_completion_duration_seconds",
				Help:    "Completion call duration in seconds by provider and status",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
			},
			[]string{"provider", "status"}, // status: success, empty, error
		),

		AnalyticsErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_analytics_errors_total",
				Help: "Analytics events that could not be recorded, by sink",
			},
			[]string{"sink"}, // sink: r2, sqlite
		),

		DocumentLoadsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_document_loads_total",
				Help: "Syllabus loads by source and status",
			},
			[]string{"source", "status"}, // source: file, r2; status: success, missing, error
		),

		DocumentSections: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "assistant_document_sections",
				Help: "Number of sections in the currently loaded syllabus",
			},
		),

		SingleflightDedupTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_singleflight_dedup_total",
				Help: "Total number of deduplicated calls (callers that waited instead of executing)",
			},
			[]string{"module"},
		),
	}

	return m
}

// RecordRequest records one /api/ask request.
func (m *Metrics) RecordRequest(route, status string, duration float64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(route, status).Inc()
	m.RequestDurationSeconds.WithLabelValues(route).Observe(duration)
}

// RecordExtraction records a deterministic extraction outcome.
func (m *Metrics) RecordExtraction(result string) {
	if m == nil {
		return
	}
	m.ExtractionTotal.WithLabelValues(result).Inc()
}

// RecordCompletion records a completion call.
func (m *Metrics) RecordCompletion(provider, status string, duration float64) {
	if m == nil {
		return
	}
	m.CompletionDurationSeconds.WithLabelValues(provider, status).Observe(duration)
}

// RecordAnalyticsError records a failed analytics write.
func (m *Metrics) RecordAnalyticsError(sink string) {
	if m == nil {
		return
	}
	m.AnalyticsErrorsTotal.WithLabelValues(sink).Inc()
}

// RecordDocumentLoad records a syllabus load and, on success, its size.
func (m *Metrics) RecordDocumentLoad(source, status string, sections int) {
	if m == nil {
		return
	}
	m.DocumentLoadsTotal.WithLabelValues(source, status).Inc()
	if status != "error" {
		m.DocumentSections.Set(float64(sections))
	}
}

// RecordSingleflightDedup records a caller that shared another caller's result.
func (m *Metrics) RecordSingleflightDedup(module string) {
	if m == nil {
		return
	}
	m.SingleflightDedupTotal.WithLabelValues(module).Inc()
}
