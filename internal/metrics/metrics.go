// Package metrics exposes Prometheus instrumentation for suggestions,
// history reads, the collector, and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "weatherfocus"

// Metrics holds every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	SuggestionsTotal   *prometheus.CounterVec
	SuggestionDuration *prometheus.HistogramVec

	HistoryReadErrors *prometheus.CounterVec
	HistorySize       *prometheus.GaugeVec
	AnalysesTotal     *prometheus.CounterVec

	SamplesRecorded *prometheus.CounterVec
	CollectorErrors *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers all metrics with reg. Each registry may be used once.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SuggestionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "suggestions_total",
				Help:      "Suggestion requests by provider, result source, and outcome",
			},
			[]string{"provider", "source", "outcome"},
		),
		SuggestionDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "suggestion_duration_seconds",
				Help:      "Time to produce a suggestion result",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"source"},
		),
		HistoryReadErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_read_errors_total",
				Help:      "History reads that failed and were treated as empty",
			},
			[]string{"stream"},
		),
		HistorySize: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "history_records",
				Help:      "Records read from each history stream on the last load",
			},
			[]string{"stream"},
		),
		AnalysesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Analyses run by kind and whether data was sufficient",
			},
			[]string{"kind", "sufficient"},
		),
		SamplesRecorded: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "samples_recorded_total",
				Help:      "Samples appended to a history stream",
			},
			[]string{"stream"},
		),
		CollectorErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "collector_errors_total",
				Help:      "Failed collector polls by source",
			},
			[]string{"source"},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP API requests",
			},
			[]string{"route", "method", "code"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP API request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

// ObserveSuggestion records one suggestion request.
func (m *Metrics) ObserveSuggestion(provider, source, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if provider == "" {
		provider = "none"
	}
	m.SuggestionsTotal.WithLabelValues(provider, source, outcome).Inc()
	m.SuggestionDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// ObserveHistoryRead records the outcome of reading one stream.
func (m *Metrics) ObserveHistoryRead(stream string, records int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.HistoryReadErrors.WithLabelValues(stream).Inc()
	}
	m.HistorySize.WithLabelValues(stream).Set(float64(records))
}

// ObserveAnalysis records one analysis run.
func (m *Metrics) ObserveAnalysis(kind string, sufficient bool) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(kind, strconv.FormatBool(sufficient)).Inc()
}

// ObserveSample records one appended sample.
func (m *Metrics) ObserveSample(stream string) {
	if m == nil {
		return
	}
	m.SamplesRecorded.WithLabelValues(stream).Inc()
}

// ObserveCollectorError records a failed poll.
func (m *Metrics) ObserveCollectorError(source string) {
	if m == nil {
		return
	}
	m.CollectorErrors.WithLabelValues(source).Inc()
}

// ObserveHTTP records one API request.
func (m *Metrics) ObserveHTTP(route, method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
