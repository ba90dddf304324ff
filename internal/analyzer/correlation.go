package analyzer

import (
	"fmt"

	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

type weatherPair = Pair[tracker.WeatherSample, tracker.ProductivitySample]

// AnalyzeCorrelations pairs weather and productivity samples by position and
// reports how productivity differs across temperature bands, weather
// conditions, and times of day. Statements come in that order.
func AnalyzeCorrelations(weather []tracker.WeatherSample, productivity []tracker.ProductivitySample) CorrelationResult {
	pairs := PositionalPair(weather, productivity)
	if len(pairs) < MinCorrelationSamples {
		return CorrelationResult{Insufficient: true}
	}

	var statements []string
	statements = append(statements, temperatureStatements(pairs)...)
	statements = append(statements, conditionStatements(pairs)...)
	statements = append(statements, timeStatements(pairs)...)

	if len(statements) == 0 {
		return CorrelationResult{Insufficient: true}
	}
	return CorrelationResult{Statements: statements}
}

func productivityScore(p weatherPair) float64 {
	return float64(p.Right.ProductivityScore)
}

func temperatureStatements(pairs []weatherPair) []string {
	buckets := GroupBy(pairs, func(p weatherPair) (string, bool) {
		return TemperatureBand(p.Left.Temp), true
	}, productivityScore)

	var out []string
	for _, b := range qualified(OrderBy(buckets, TemperatureBands), MinCorrelationSamples) {
		avg := percent(b.Aggregate().Avg)
		switch {
		case avg > HighProductivity:
			out = append(out, fmt.Sprintf("Higher productivity (%d%%) when temperature is %s", avg, b.Key))
		case avg < LowProductivity:
			out = append(out, fmt.Sprintf("Lower productivity (%d%%) when temperature is %s", avg, b.Key))
		}
	}
	return out
}

func conditionStatements(pairs []weatherPair) []string {
	buckets := GroupBy(pairs, func(p weatherPair) (string, bool) {
		return ConditionKey(p.Left.Conditions)
	}, productivityScore)

	var out []string
	for _, b := range qualified(buckets, MinCorrelationSamples) {
		avg := percent(b.Aggregate().Avg)
		switch {
		case avg > HighProductivity:
			out = append(out, fmt.Sprintf("Productivity peaks during %s weather", b.Key))
		case avg < LowProductivity:
			out = append(out, fmt.Sprintf("Productivity drops during %s weather", b.Key))
		}
	}
	return out
}

func timeStatements(pairs []weatherPair) []string {
	buckets := GroupBy(pairs, func(p weatherPair) (string, bool) {
		return TimeOfDayBand(p.Right.Timestamp.Hour()), true
	}, productivityScore)

	var out []string
	for _, b := range qualified(OrderBy(buckets, TimeOfDayBands), MinCorrelationSamples) {
		avg := percent(b.Aggregate().Avg)
		if avg > HighProductivity || avg < LowProductivity {
			out = append(out, fmt.Sprintf("%d%% productivity in the %s", avg, b.Key))
		}
	}
	return out
}
