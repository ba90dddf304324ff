package tracker

import "math"

// Score returns the share of tracked time spent focused, as a rounded
// percentage. It is 0 when nothing was tracked.
func Score(focusedMinutes, distractedMinutes int) int {
	return ScoreFloat(float64(focusedMinutes), float64(distractedMinutes))
}

// ScoreFloat is Score for fractional minutes.
func ScoreFloat(focused, distracted float64) int {
	total := focused + distracted
	if total <= 0 {
		return 0
	}
	return int(math.Round(focused / total * 100))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
