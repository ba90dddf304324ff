package analyzer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

func sessionsAt(start time.Time, n int, completed func(i int) bool) []tracker.PomodoroSession {
	out := make([]tracker.PomodoroSession, n)
	for i := range out {
		out[i] = tracker.PomodoroSession{
			Timestamp: start.Add(time.Duration(i) * 30 * time.Minute),
			Duration:  25 * 60,
			Completed: completed(i),
			Cycle:     i + 1,
		}
	}
	return out
}

func TestAnalyzePomodoro_NoSessions(t *testing.T) {
	result := AnalyzePomodoro(nil, []tracker.WeatherSample{weatherAt(0, 20, "Clear")})
	assert.Equal(t, MsgNoPomodoros, result.Message)
	assert.Empty(t, result.Patterns)
}

func TestAnalyzePomodoro_FiveCompletedClear(t *testing.T) {
	weather := []tracker.WeatherSample{weatherAt(0, 20, "Clear")}
	sessions := sessionsAt(base, 5, func(int) bool { return true })

	result := AnalyzePomodoro(sessions, weather)
	require.Equal(t, MsgPomodoroPatterns, result.Message)

	found := false
	for _, p := range result.Patterns {
		if strings.Contains(p, "100%") && strings.Contains(p, "clear weather") {
			found = true
		}
	}
	assert.True(t, found, "patterns: %v", result.Patterns)
	assert.Contains(t, result.Patterns, "100% completion rate in the morning")
}

func TestAnalyzePomodoro_BelowThreshold(t *testing.T) {
	weather := []tracker.WeatherSample{weatherAt(0, 20, "Clear")}
	sessions := sessionsAt(base, 4, func(int) bool { return true })

	result := AnalyzePomodoro(sessions, weather)
	assert.Equal(t, MsgKeepUsingPomodoro, result.Message)
	assert.Empty(t, result.Patterns)
}

func TestAnalyzePomodoro_ThresholdsUseUnroundedRate(t *testing.T) {
	weather := []tracker.WeatherSample{weatherAt(0, 20, "Clear")}

	tests := []struct {
		name      string
		total     int
		completed int
		want      string
	}{
		{"just above high", 41, 33, "You complete 80% of Pomodoros during clear weather"},
		{"just below low", 125, 62, "Only 50% Pomodoro completion during clear weather"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := sessionsAt(base, tt.total, func(i int) bool { return i < tt.completed })
			result := AnalyzePomodoro(sessions, weather)
			assert.Contains(t, result.Patterns, tt.want)
		})
	}

	exact := sessionsAt(base, 5, func(i int) bool { return i < 4 })
	for _, p := range AnalyzePomodoro(exact, weather).Patterns {
		assert.NotContains(t, p, "clear weather")
	}
}

func TestAnalyzePomodoro_LowCompletionByNearestWeather(t *testing.T) {
	// Rain in the morning, clear from the afternoon on.
	weather := []tracker.WeatherSample{
		weatherAt(0, 12, "Rain"),
		weatherAt(6*time.Hour, 22, "Clear"),
	}
	sessions := sessionsAt(base, 6, func(i int) bool { return i == 0 })

	result := AnalyzePomodoro(sessions, weather)
	assert.Equal(t, []string{
		"Only 17% Pomodoro completion during rain weather",
		"17% completion rate in the morning",
	}, result.Patterns)
}

func TestAnalyzePomodoro_NoWeatherStillReportsTime(t *testing.T) {
	evening := time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)
	sessions := sessionsAt(evening, 5, func(i int) bool { return i < 2 })

	result := AnalyzePomodoro(sessions, nil)
	assert.Equal(t, []string{"40% completion rate in the evening"}, result.Patterns)
}

func TestAnalyzePomodoro_DeadZone(t *testing.T) {
	weather := []tracker.WeatherSample{weatherAt(0, 20, "Clouds")}
	sessions := sessionsAt(base, 5, func(i int) bool { return i < 3 })

	result := AnalyzePomodoro(sessions, weather)
	assert.Empty(t, result.Patterns, "60% completion is between the thresholds")
}
