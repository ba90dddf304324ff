package analyzer

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

// Feed messages.
const (
	MsgMoreTimeData      = "Collect more data for time-based insights"
	MsgNoTimePatterns    = "No time patterns detected yet"
	MsgMoreWeatherData   = "Collect more data for weather insights"
	MsgNoWeatherPatterns = "No weather patterns detected yet"
	MsgNoTips            = "No specific tips right now. Keep working!"
)

// minFeedWeatherSamples is the history size both streams need before the
// feed reports weather insights.
const minFeedWeatherSamples = 5

// BuildFeed assembles the insight feed from history and the current
// snapshot. Either snapshot may be nil.
func BuildFeed(
	weather []tracker.WeatherSample,
	productivity []tracker.ProductivitySample,
	currentWeather *tracker.WeatherSample,
	currentProductivity *tracker.ProductivitySample,
	now time.Time,
) FeedResult {
	return FeedResult{
		TimeInsights:    HourlyInsights(productivity),
		WeatherInsights: WeatherFocusInsights(weather, productivity),
		CurrentTips:     CurrentTips(currentWeather, currentProductivity, now),
		GeneratedAt:     now,
	}
}

// HourlyInsights finds the hours of the day with the best and worst share of
// focused time.
func HourlyInsights(productivity []tracker.ProductivitySample) []string {
	if len(productivity) < MinCorrelationSamples {
		return []string{MsgMoreTimeData}
	}

	var focused, distracted [24]int
	for _, p := range productivity {
		if p.Timestamp.IsZero() {
			continue
		}
		h := p.Timestamp.Hour()
		focused[h] += p.FocusedTime
		distracted[h] += p.DistractedTime
	}

	bestHour, worstHour := -1, -1
	bestScore, worstScore := 0.0, 100.0
	for h := 0; h < 24; h++ {
		total := focused[h] + distracted[h]
		if total == 0 {
			continue
		}
		score := float64(focused[h]) / float64(total) * 100
		if score > bestScore {
			bestScore, bestHour = score, h
		}
		if score < worstScore {
			worstScore, worstHour = score, h
		}
	}

	var insights []string
	if bestHour >= 0 {
		insights = append(insights, fmt.Sprintf("Your most productive time: %s (%d%% focus)", FormatHour(bestHour), percent(bestScore)))
	}
	if worstHour >= 0 {
		insights = append(insights, fmt.Sprintf("Your least productive time: %s (%d%% focus)", FormatHour(worstHour), percent(worstScore)))
	}
	if len(insights) == 0 {
		return []string{MsgNoTimePatterns}
	}
	return insights
}

// WeatherFocusInsights reports the focused-time share per weather condition,
// pairing samples by position.
func WeatherFocusInsights(weather []tracker.WeatherSample, productivity []tracker.ProductivitySample) []string {
	if len(weather) < minFeedWeatherSamples || len(productivity) < minFeedWeatherSamples {
		return []string{MsgMoreWeatherData}
	}

	pairs := PositionalPair(weather, productivity)
	condition := func(p weatherPair) (string, bool) { return ConditionKey(p.Left.Conditions) }
	focusedBuckets := GroupBy(pairs, condition, func(p weatherPair) float64 { return float64(p.Right.FocusedTime) })
	totalBuckets := GroupBy(pairs, condition, func(p weatherPair) float64 {
		return float64(p.Right.FocusedTime + p.Right.DistractedTime)
	})

	var insights []string
	for i, b := range focusedBuckets {
		total := totalBuckets[i].Sum
		if b.Count < MinCorrelationSamples || total == 0 {
			continue
		}
		score := b.Sum / total * 100
		switch {
		case score > HighProductivity:
			insights = append(insights, fmt.Sprintf("You're very productive during %s weather (%d%% focus)", b.Key, percent(score)))
		case score < LowProductivity:
			insights = append(insights, fmt.Sprintf("You struggle to focus during %s weather (%d%% focus)", b.Key, percent(score)))
		}
	}
	if len(insights) == 0 {
		return []string{MsgNoWeatherPatterns}
	}
	return insights
}

// CurrentTips returns tips for the current hour and conditions.
func CurrentTips(weather *tracker.WeatherSample, productivity *tracker.ProductivitySample, now time.Time) []string {
	var tips []string

	hour := now.Hour()
	switch {
	case hour < 12:
		tips = append(tips, "Morning hours are great for deep work")
	case hour < 14:
		tips = append(tips, "Consider a short break after lunch to avoid the afternoon slump")
	case hour < 17:
		tips = append(tips, "Afternoons are good for collaborative work and meetings")
	}

	if weather != nil {
		switch {
		case weather.Temp > 25:
			tips = append(tips, "It's warm - stay hydrated and take cooling breaks")
		case weather.Temp < 15:
			tips = append(tips, "It's cool - a warm drink might help maintain focus")
		}

		condition := strings.ToLower(weather.Conditions)
		switch {
		case strings.Contains(condition, "rain"):
			tips = append(tips, "Rainy weather can be great for focused work")
		case strings.Contains(condition, "sun"):
			tips = append(tips, "Bright sunlight? Consider adjusting your screen brightness")
		}
	}

	if productivity != nil {
		switch {
		case productivity.ProductivityScore < 40:
			tips = append(tips, "Try the Pomodoro technique to boost your focus")
		case productivity.ProductivityScore > 75:
			tips = append(tips, "You're in the zone! Protect this focused time")
		}
	}

	if len(tips) == 0 {
		return []string{MsgNoTips}
	}
	return tips
}

// FormatHour renders an hour of the day as 9AM / 12PM / 3PM.
func FormatHour(hour int) string {
	switch {
	case hour > 12:
		return fmt.Sprintf("%dPM", hour-12)
	case hour == 12:
		return "12PM"
	default:
		return fmt.Sprintf("%dAM", hour)
	}
}
