package analyzer

import (
	"fmt"

	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

// AnalyzePomodoro reports completion-rate patterns of Pomodoro sessions by
// the weather nearest each session and by time of day.
func AnalyzePomodoro(sessions []tracker.PomodoroSession, weather []tracker.WeatherSample) PatternResult {
	if len(sessions) == 0 {
		return PatternResult{Message: MsgNoPomodoros, Patterns: []string{}}
	}

	patterns := pomodoroPatterns(sessions, weather)
	if len(patterns) == 0 {
		return PatternResult{Message: MsgKeepUsingPomodoro, Patterns: []string{}}
	}
	return PatternResult{Message: MsgPomodoroPatterns, Patterns: patterns}
}

func completedValue(s tracker.PomodoroSession) float64 {
	if s.Completed {
		return 1
	}
	return 0
}

func pomodoroPatterns(sessions []tracker.PomodoroSession, weather []tracker.WeatherSample) []string {
	var patterns []string

	byWeather := GroupBy(sessions, func(s tracker.PomodoroSession) (string, bool) {
		if s.Timestamp.IsZero() {
			return "", false
		}
		w, ok := Nearest(s.Timestamp, weather)
		if !ok {
			return "", false
		}
		return ConditionKey(w.Conditions)
	}, completedValue)

	// Thresholds apply to the unrounded rate; rounding is for display only.
	for _, b := range qualified(byWeather, MinPatternSamples) {
		rate := b.Aggregate().Avg * 100
		switch {
		case rate > HighCompletion:
			patterns = append(patterns, fmt.Sprintf("You complete %d%% of Pomodoros during %s weather", percent(rate), b.Key))
		case rate < LowCompletion:
			patterns = append(patterns, fmt.Sprintf("Only %d%% Pomodoro completion during %s weather", percent(rate), b.Key))
		}
	}

	byTime := GroupBy(sessions, func(s tracker.PomodoroSession) (string, bool) {
		if s.Timestamp.IsZero() {
			return "", false
		}
		return TimeOfDayBand(s.Timestamp.Hour()), true
	}, completedValue)

	for _, b := range qualified(OrderBy(byTime, TimeOfDayBands), MinPatternSamples) {
		rate := b.Aggregate().Avg * 100
		if rate > HighCompletion || rate < LowCompletion {
			patterns = append(patterns, fmt.Sprintf("%d%% completion rate in the %s", percent(rate), b.Key))
		}
	}

	return patterns
}
