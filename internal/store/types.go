package store

import "github.com/blackwell-systems/weatherfocus/internal/tracker"

// Limits caps how many records each stream retains. Oldest records are
// trimmed first.
type Limits struct {
	Weather      int `json:"weather"`
	Productivity int `json:"productivity"`
	Pomodoro     int `json:"pomodoro"`
}

// DefaultLimits match the history sizes the analyses are tuned for.
var DefaultLimits = Limits{Weather: 30, Productivity: 30, Pomodoro: 100}

// For returns the limit for a stream.
func (l Limits) For(stream tracker.Stream) int {
	switch stream {
	case tracker.StreamWeather:
		return l.Weather
	case tracker.StreamProductivity:
		return l.Productivity
	case tracker.StreamPomodoro:
		return l.Pomodoro
	}
	return 0
}

// Counts is the number of stored records per stream.
type Counts struct {
	Weather      int `json:"weather"`
	Productivity int `json:"productivity"`
	Pomodoro     int `json:"pomodoro"`
}

// ImportStats summarizes a batch import.
type ImportStats struct {
	Inserted int `json:"inserted"`
	// Duplicates were already present by ID.
	Duplicates int `json:"duplicates"`
	// Skipped were malformed lines rejected by the parser.
	Skipped int `json:"skipped"`
}
