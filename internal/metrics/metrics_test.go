package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSuggestion(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveSuggestion("cohere", "ai", "ok", 20*time.Millisecond)
	m.ObserveSuggestion("", "local-heuristics", "skipped", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SuggestionsTotal.WithLabelValues("cohere", "ai", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SuggestionsTotal.WithLabelValues("none", "local-heuristics", "skipped")))
}

func TestObserveHistoryRead(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveHistoryRead("weatherHistory", 12, nil)
	m.ObserveHistoryRead("pomodoroHistory", 0, errors.New("locked"))

	assert.Equal(t, 12.0, testutil.ToFloat64(m.HistorySize.WithLabelValues("weatherHistory")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryReadErrors.WithLabelValues("pomodoroHistory")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HistoryReadErrors.WithLabelValues("weatherHistory")))
}

func TestObserveCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveAnalysis("correlations", false)
	m.ObserveSample("productivityHistory")
	m.ObserveSample("productivityHistory")
	m.ObserveCollectorError("weather")
	m.ObserveHTTP("/api/insights", "GET", 200, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("correlations", "false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SamplesRecorded.WithLabelValues("productivityHistory")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CollectorErrors.WithLabelValues("weather")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/api/insights", "GET", "200")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSuggestion("x", "ai", "ok", 0)
		m.ObserveHistoryRead("s", 0, nil)
		m.ObserveAnalysis("k", true)
		m.ObserveSample("s")
		m.ObserveCollectorError("c")
		m.ObserveHTTP("/", "GET", 200, 0)
	})
}
