// Package suggest produces short productivity suggestions for the current
// weather and focus snapshot, preferring a remote AI provider and falling
// back to local heuristics.
package suggest

import (
	"context"
	"errors"
	"time"

	"github.com/blackwell-systems/weatherfocus/internal/analyzer"
	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

// Result sources.
const (
	SourceAI    = "ai"
	SourceLocal = "local-heuristics"
)

// MaxSuggestions caps every result.
const MaxSuggestions = 3

// ErrInvalidContext is returned by Context.Validate when a snapshot is missing.
var ErrInvalidContext = errors.New("suggestion context requires weather and productivity")

// WeatherSnapshot is the weather part of a suggestion context.
type WeatherSnapshot struct {
	Conditions string  `json:"conditions"`
	Temp       float64 `json:"temp"`
}

// ProductivitySnapshot is the focus part of a suggestion context.
type ProductivitySnapshot struct {
	Score       int `json:"score"`
	FocusedTime int `json:"focusedTime"`
}

// Context is built fresh for every request and never stored.
type Context struct {
	Weather      *WeatherSnapshot      `json:"weather"`
	Productivity *ProductivitySnapshot `json:"productivity"`
	TimeOfDay    string                `json:"timeOfDay"`
	Timestamp    time.Time             `json:"timestamp"`
}

// NewContext builds a Context from the latest samples. Nil samples leave the
// corresponding snapshot empty.
func NewContext(weather *tracker.WeatherSample, productivity *tracker.ProductivitySample, now time.Time) Context {
	sc := Context{
		TimeOfDay: analyzer.TimeOfDayBand(now.Hour()),
		Timestamp: now,
	}
	if weather != nil {
		sc.Weather = &WeatherSnapshot{Conditions: weather.Conditions, Temp: weather.Temp}
	}
	if productivity != nil {
		sc.Productivity = &ProductivitySnapshot{Score: productivity.ProductivityScore, FocusedTime: productivity.FocusedTime}
	}
	return sc
}

// Validate reports whether remote providers can be asked about this context.
func (c Context) Validate() error {
	if c.Weather == nil || c.Productivity == nil {
		return ErrInvalidContext
	}
	return nil
}

// Result is the normalized output of any tier.
type Result struct {
	Source      string   `json:"source"`
	Provider    string   `json:"provider,omitempty"`
	Suggestions []string `json:"suggestions"`
}

// Provider is a remote suggestion source.
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string
	// Available reports whether the provider is configured.
	Available() bool
	// Generate returns normalized suggestions or an error.
	Generate(ctx context.Context, sc Context) ([]string, error)
}

// Recorder receives one call per suggestion request. outcome is "ok",
// "error", or "skipped".
type Recorder interface {
	ObserveSuggestion(provider, source, outcome string, elapsed time.Duration)
}
