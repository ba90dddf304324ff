// Package engine loads history through storage capabilities and runs the
// analyzers and the suggestion chain over it.
package engine

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/weatherfocus/internal/analyzer"
	"github.com/blackwell-systems/weatherfocus/internal/metrics"
	"github.com/blackwell-systems/weatherfocus/internal/suggest"
	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

// History reads the retained records of each stream in append order.
type History interface {
	WeatherHistory(ctx context.Context) ([]tracker.WeatherSample, error)
	ProductivityHistory(ctx context.Context) ([]tracker.ProductivitySample, error)
	PomodoroHistory(ctx context.Context) ([]tracker.PomodoroSession, error)
}

// Snapshot reads the latest sample of each live stream. A nil sample with a
// nil error means the stream is empty.
type Snapshot interface {
	LatestWeather(ctx context.Context) (*tracker.WeatherSample, error)
	LatestProductivity(ctx context.Context) (*tracker.ProductivitySample, error)
}

// Suggester produces suggestions for a context. *suggest.Chain implements it.
type Suggester interface {
	Suggest(ctx context.Context, sc suggest.Context) suggest.Result
}

// Histories is one consistent read of all three streams.
type Histories struct {
	Weather      []tracker.WeatherSample      `json:"weatherHistory"`
	Productivity []tracker.ProductivitySample `json:"productivityHistory"`
	Pomodoro     []tracker.PomodoroSession    `json:"pomodoroHistory"`
}

// Report bundles every analysis for a single load.
type Report struct {
	Insights    analyzer.InsightResult `json:"insights"`
	Patterns    analyzer.PatternResult `json:"patterns"`
	Suggestions suggest.Result         `json:"suggestions"`
	Feed        analyzer.FeedResult    `json:"feed"`
}

// Engine is safe for concurrent use when its dependencies are.
type Engine struct {
	history   History
	snapshot  Snapshot
	suggester Suggester
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// New returns an engine. logger and m may be nil.
func New(history History, snapshot Snapshot, suggester Suggester, logger *slog.Logger, m *metrics.Metrics) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		history:   history,
		snapshot:  snapshot,
		suggester: suggester,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

// Load reads all three streams concurrently and waits for every read. A
// failed read is logged and yields an empty stream; Load never fails.
func (e *Engine) Load(ctx context.Context) Histories {
	var h Histories
	var g errgroup.Group

	g.Go(func() error {
		h.Weather = read(ctx, e, tracker.StreamWeather, e.history.WeatherHistory)
		return nil
	})
	g.Go(func() error {
		h.Productivity = read(ctx, e, tracker.StreamProductivity, e.history.ProductivityHistory)
		return nil
	})
	g.Go(func() error {
		h.Pomodoro = read(ctx, e, tracker.StreamPomodoro, e.history.PomodoroHistory)
		return nil
	})
	_ = g.Wait()

	return h
}

func read[T any](ctx context.Context, e *Engine, stream tracker.Stream, fn func(context.Context) ([]T, error)) []T {
	items, err := fn(ctx)
	if err != nil {
		e.logger.Warn("history read failed, treating as empty", "stream", stream, "error", err)
		e.metrics.ObserveHistoryRead(string(stream), 0, err)
		return nil
	}
	e.metrics.ObserveHistoryRead(string(stream), len(items), nil)
	return items
}

// Correlations runs the weather/productivity correlation analysis.
func (e *Engine) Correlations(ctx context.Context) analyzer.CorrelationResult {
	h := e.Load(ctx)
	return e.correlations(h)
}

func (e *Engine) correlations(h Histories) analyzer.CorrelationResult {
	res := analyzer.AnalyzeCorrelations(h.Weather, h.Productivity)
	e.metrics.ObserveAnalysis("correlations", !res.Insufficient)
	return res
}

// Insights runs the correlation analysis and formats it.
func (e *Engine) Insights(ctx context.Context) analyzer.InsightResult {
	return analyzer.FormatInsights(e.Correlations(ctx))
}

// Pomodoro runs the Pomodoro pattern analysis.
func (e *Engine) Pomodoro(ctx context.Context) analyzer.PatternResult {
	return e.pomodoro(e.Load(ctx))
}

func (e *Engine) pomodoro(h Histories) analyzer.PatternResult {
	res := analyzer.AnalyzePomodoro(h.Pomodoro, h.Weather)
	e.metrics.ObserveAnalysis("pomodoro", len(res.Patterns) > 0)
	return res
}

// Current returns the latest weather and productivity samples. Read errors
// are logged and treated as missing samples.
func (e *Engine) Current(ctx context.Context) (*tracker.WeatherSample, *tracker.ProductivitySample) {
	w, err := e.snapshot.LatestWeather(ctx)
	if err != nil {
		e.logger.Warn("latest weather read failed", "error", err)
		w = nil
	}
	p, err := e.snapshot.LatestProductivity(ctx)
	if err != nil {
		e.logger.Warn("latest productivity read failed", "error", err)
		p = nil
	}
	return w, p
}

// Suggestions asks the suggestion chain about the current snapshot.
func (e *Engine) Suggestions(ctx context.Context) suggest.Result {
	w, p := e.Current(ctx)
	return e.suggester.Suggest(ctx, suggest.NewContext(w, p, e.now()))
}

// Feed builds the insight feed from history and the current snapshot.
func (e *Engine) Feed(ctx context.Context) analyzer.FeedResult {
	h := e.Load(ctx)
	w, p := e.Current(ctx)
	res := analyzer.BuildFeed(h.Weather, h.Productivity, w, p, e.now())
	e.metrics.ObserveAnalysis("feed", true)
	return res
}

// Report runs every analysis over a single history load.
func (e *Engine) Report(ctx context.Context) Report {
	h := e.Load(ctx)
	w, p := e.Current(ctx)
	now := e.now()

	return Report{
		Insights:    analyzer.FormatInsights(e.correlations(h)),
		Patterns:    e.pomodoro(h),
		Suggestions: e.suggester.Suggest(ctx, suggest.NewContext(w, p, now)),
		Feed:        analyzer.BuildFeed(h.Weather, h.Productivity, w, p, now),
	}
}
