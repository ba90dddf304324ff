// Package analyzer correlates weather observations with productivity and
// Pomodoro histories. Every function here is pure: it works over slices that
// were already fetched and never performs I/O.
package analyzer

import "time"

// Minimum bucket sizes before a bucket may produce a statement.
const (
	MinCorrelationSamples = 3
	MinPatternSamples     = 5
)

// Score thresholds. Averages between the low and high marks produce nothing.
const (
	HighProductivity = 75
	LowProductivity  = 50
	HighCompletion   = 80
	LowCompletion    = 50
)

// User-facing messages.
const (
	NoCorrelations       = "No strong correlations found yet"
	MsgPatternsFound     = "We've found some interesting patterns"
	MsgKeepUsing         = "Keep using the app to discover patterns"
	MsgNoPomodoros       = "Complete Pomodoro sessions to get analysis"
	MsgPomodoroPatterns  = "We found patterns in your Pomodoro sessions"
	MsgKeepUsingPomodoro = "Keep using Pomodoros to discover patterns"
)

// Timestamped is implemented by every recorded sample.
type Timestamped interface {
	At() time.Time
}

// Bucket accumulates values for one group key during a single pass.
type Bucket struct {
	Key   string
	Sum   float64
	Count int
}

// Aggregate is the summary statistic of a bucket.
type Aggregate struct {
	Avg   float64
	Count int
}

// CorrelationResult is the outcome of AnalyzeCorrelations. Insufficient is
// set when there were too few pairs or no bucket crossed a threshold.
type CorrelationResult struct {
	Statements   []string `json:"statements"`
	Insufficient bool     `json:"insufficient"`
}

// Lines returns the statements, substituting the NoCorrelations line when
// the result is insufficient. Callers that still compare against that text
// rely on this; new code should check Insufficient instead.
func (r CorrelationResult) Lines() []string {
	if r.Insufficient || len(r.Statements) == 0 {
		return []string{NoCorrelations}
	}
	out := make([]string, len(r.Statements))
	copy(out, r.Statements)
	return out
}

// InsightResult is the formatted view of a correlation run.
type InsightResult struct {
	Message      string   `json:"message"`
	Correlations []string `json:"correlations"`
	Tips         []string `json:"tips"`
}

// PatternResult is the outcome of AnalyzePomodoro.
type PatternResult struct {
	Message  string   `json:"message"`
	Patterns []string `json:"patterns"`
}

// FeedResult groups the hourly, weather, and current-condition insights.
type FeedResult struct {
	TimeInsights    []string  `json:"time_insights"`
	WeatherInsights []string  `json:"weather_insights"`
	CurrentTips     []string  `json:"current_tips"`
	GeneratedAt     time.Time `json:"generated_at"`
}
