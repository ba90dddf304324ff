// Package tracker defines the recorded weather, productivity, and Pomodoro
// samples along with parsers for importing them.
package tracker

import (
	"time"

	"github.com/google/uuid"
)

// Stream names the append-only history a record belongs to.
type Stream string

// Known streams.
const (
	StreamWeather      Stream = "weatherHistory"
	StreamProductivity Stream = "productivityHistory"
	StreamPomodoro     Stream = "pomodoroHistory"
)

// Streams lists every known stream in a stable order.
var Streams = []Stream{StreamWeather, StreamProductivity, StreamPomodoro}

// ParseStream validates a stream name.
func ParseStream(s string) (Stream, bool) {
	for _, st := range Streams {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// WeatherSample is a single ambient weather observation.
type WeatherSample struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Temp       float64   `json:"temp"`
	FeelsLike  float64   `json:"feelsLike,omitempty"`
	Conditions string    `json:"conditions"`
	Humidity   int       `json:"humidity"`
	WindSpeed  float64   `json:"windSpeed"`
	Location   string    `json:"location,omitempty"`
}

// At returns the observation time.
func (w WeatherSample) At() time.Time { return w.Timestamp }

// ProductivitySample is a focus measurement. ProductivityScore is computed
// when the sample is recorded and is treated as authoritative afterwards.
type ProductivitySample struct {
	ID                string    `json:"id"`
	Timestamp         time.Time `json:"timestamp"`
	FocusedTime       int       `json:"focusedTime"`
	DistractedTime    int       `json:"distractedTime"`
	ProductivityScore int       `json:"productivityScore"`
	AppsUsed          []string  `json:"appsUsed,omitempty"`
}

// At returns the measurement time.
func (p ProductivitySample) At() time.Time { return p.Timestamp }

// PomodoroSession is one work interval. Duration is in seconds.
type PomodoroSession struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Duration  int       `json:"duration"`
	Completed bool      `json:"completed"`
	Cycle     int       `json:"cycle"`
}

// At returns the session end time.
func (s PomodoroSession) At() time.Time { return s.Timestamp }

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}
