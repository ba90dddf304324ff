// Package collector samples weather and desktop activity in the background,
// appends them to history, and emits alerts when the picture changes.
package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/blackwell-systems/weatherfocus/internal/analyzer"
	"github.com/blackwell-systems/weatherfocus/internal/metrics"
	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

// WeatherSource fetches the current weather.
type WeatherSource interface {
	Current(ctx context.Context) (tracker.WeatherSample, error)
}

// ActivitySource summarizes recent desktop activity.
type ActivitySource interface {
	Current(ctx context.Context) (tracker.ProductivitySample, error)
}

// Sink appends samples to history.
type Sink interface {
	AddWeather(ctx context.Context, s tracker.WeatherSample) (bool, error)
	AddProductivity(ctx context.Context, s tracker.ProductivitySample) (bool, error)
}

// Analysis reads derived state for comparison between cycles.
type Analysis interface {
	Correlations(ctx context.Context) analyzer.CorrelationResult
	Current(ctx context.Context) (*tracker.WeatherSample, *tracker.ProductivitySample)
}

// Alert represents a notable event detected by the collector.
type Alert struct {
	Level   string // "info", "warning", "critical"
	Title   string
	Message string
	Time    time.Time
}

// State is what the collector compares between cycles.
type State struct {
	Timestamp    time.Time
	Statements   []string
	Weather      *tracker.WeatherSample
	Productivity *tracker.ProductivitySample
}

// Options configures a Collector. Either source may be nil to disable it.
type Options struct {
	Weather              WeatherSource
	Activity             ActivitySource
	Sink                 Sink
	Analysis             Analysis
	WeatherInterval      time.Duration
	ProductivityInterval time.Duration
	AlertFn              func(Alert)
	Logger               *slog.Logger
	Metrics              *metrics.Metrics
}

// Collector polls its sources at fixed intervals.
type Collector struct {
	opts          Options
	previous      *State
	lastAlertKeys map[string]bool
	logger        *slog.Logger
	now           func() time.Time
}

// New returns a Collector. Zero intervals default to 30 and 15 minutes.
func New(opts Options) *Collector {
	if opts.WeatherInterval <= 0 {
		opts.WeatherInterval = 30 * time.Minute
	}
	if opts.ProductivityInterval <= 0 {
		opts.ProductivityInterval = 15 * time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Collector{
		opts:          opts,
		lastAlertKeys: make(map[string]bool),
		logger:        logger,
		now:           time.Now,
	}
}

// Run collects from both sources immediately, then on each interval, until
// ctx is cancelled. Source failures are logged and never stop the loop.
func (c *Collector) Run(ctx context.Context) error {
	if c.opts.Weather == nil && c.opts.Activity == nil {
		return errors.New("collector: no sources configured")
	}

	c.CollectWeather(ctx)
	c.CollectActivity(ctx)
	c.previous = c.Snapshot(ctx)

	weatherTicker := time.NewTicker(c.opts.WeatherInterval)
	defer weatherTicker.Stop()
	activityTicker := time.NewTicker(c.opts.ProductivityInterval)
	defer activityTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-weatherTicker.C:
			if c.CollectWeather(ctx) {
				c.emit(c.Check(ctx))
			}
		case <-activityTicker.C:
			if c.CollectActivity(ctx) {
				c.emit(c.Check(ctx))
			}
		}
	}
}

func (c *Collector) emit(alerts []Alert) {
	if c.opts.AlertFn == nil {
		return
	}
	for _, a := range alerts {
		c.opts.AlertFn(a)
	}
}

// CollectWeather fetches and stores one weather sample. It reports whether a
// new sample was stored.
func (c *Collector) CollectWeather(ctx context.Context) bool {
	if c.opts.Weather == nil {
		return false
	}
	s, err := c.opts.Weather.Current(ctx)
	if err != nil {
		c.logger.Warn("weather fetch failed", "error", err)
		c.opts.Metrics.ObserveCollectorError("weather")
		return false
	}
	return c.store(ctx, tracker.StreamWeather, func() (bool, error) {
		return c.opts.Sink.AddWeather(ctx, s)
	})
}

// CollectActivity fetches and stores one productivity sample.
func (c *Collector) CollectActivity(ctx context.Context) bool {
	if c.opts.Activity == nil {
		return false
	}
	s, err := c.opts.Activity.Current(ctx)
	if err != nil {
		c.logger.Warn("activity fetch failed", "error", err)
		c.opts.Metrics.ObserveCollectorError("activity")
		return false
	}
	return c.store(ctx, tracker.StreamProductivity, func() (bool, error) {
		return c.opts.Sink.AddProductivity(ctx, s)
	})
}

func (c *Collector) store(ctx context.Context, stream tracker.Stream, add func() (bool, error)) bool {
	added, err := add()
	if err != nil {
		c.logger.Error("storing sample failed", "stream", stream, "error", err)
		c.opts.Metrics.ObserveCollectorError("store")
		return false
	}
	if added {
		c.opts.Metrics.ObserveSample(string(stream))
		c.logger.Debug("sample stored", "stream", stream)
	}
	return added
}

// Snapshot captures the derived state used for comparison.
func (c *Collector) Snapshot(ctx context.Context) *State {
	st := &State{Timestamp: c.now()}
	if c.opts.Analysis == nil {
		return st
	}
	res := c.opts.Analysis.Correlations(ctx)
	if !res.Insufficient {
		st.Statements = res.Statements
	}
	st.Weather, st.Productivity = c.opts.Analysis.Current(ctx)
	return st
}

// Check takes a new snapshot, compares it with the previous one, and
// returns any alerts. Identical alerts are suppressed until the underlying
// data changes.
func (c *Collector) Check(ctx context.Context) []Alert {
	curr := c.Snapshot(ctx)

	var raw []Alert
	if c.previous != nil {
		raw = Compare(c.previous, curr)
	}

	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := fmt.Sprintf("%s:%s:%s", a.Level, a.Title, a.Message)
		currentKeys[key] = true
		if !c.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	c.lastAlertKeys = currentKeys

	c.previous = curr
	return alerts
}
