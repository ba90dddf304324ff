package collector

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/weatherfocus/internal/analyzer"
)

// lowFocusScore is the score below which a drop is critical.
const lowFocusScore = 40

// Compare detects notable changes between two states and returns alerts,
// most severe first.
func Compare(prev, curr *State) []Alert {
	var alerts []Alert

	alerts = append(alerts, compareCritical(prev, curr)...)
	alerts = append(alerts, compareWarning(prev, curr)...)
	alerts = append(alerts, compareInfo(prev, curr)...)

	return alerts
}

func compareCritical(prev, curr *State) []Alert {
	if curr.Productivity == nil || curr.Productivity.ProductivityScore >= lowFocusScore {
		return nil
	}
	if prev.Productivity != nil && prev.Productivity.ProductivityScore < lowFocusScore {
		return nil
	}
	return []Alert{{
		Level:   "critical",
		Title:   "Focus dropped",
		Message: fmt.Sprintf("Productivity score is %d%% over the last day", curr.Productivity.ProductivityScore),
		Time:    curr.Timestamp,
	}}
}

func compareWarning(prev, curr *State) []Alert {
	if curr.Weather == nil {
		return nil
	}
	var alerts []Alert

	// Weather turned into a condition the history says hurts focus.
	changed := prev.Weather == nil || !strings.EqualFold(prev.Weather.Conditions, curr.Weather.Conditions)
	if changed {
		cond, ok := analyzer.ConditionKey(curr.Weather.Conditions)
		drop := fmt.Sprintf("Productivity drops during %s weather", cond)
		if ok && contains(curr.Statements, drop) {
			alerts = append(alerts, Alert{
				Level:   "warning",
				Title:   fmt.Sprintf("%s weather", curr.Weather.Conditions),
				Message: "Your focus usually drops in this weather. Plan shorter work blocks.",
				Time:    curr.Timestamp,
			})
		}
	}

	// Temperature crossed into the warm range.
	if curr.Weather.Temp > 25 && (prev.Weather == nil || prev.Weather.Temp <= 25) {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "Warm weather",
			Message: fmt.Sprintf("It's %.0f°C. Stay hydrated and take cooling breaks.", curr.Weather.Temp),
			Time:    curr.Timestamp,
		})
	}

	return alerts
}

func compareInfo(prev, curr *State) []Alert {
	var alerts []Alert
	for _, s := range curr.Statements {
		if contains(prev.Statements, s) {
			continue
		}
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "New pattern",
			Message: s,
			Time:    curr.Timestamp,
		})
	}
	return alerts
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
