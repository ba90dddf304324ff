package analyzer

import "strings"

// tipRule emits Tip when any statement contains every phrase in Match.
type tipRule struct {
	Match []string
	Tip   string
}

// tipRules are matched against the literal statement text. The "Rain" rule
// is case-sensitive while condition keys are lower-cased, so it only fires
// for statements produced elsewhere with a capitalized condition.
var tipRules = []tipRule{
	{Match: []string{"Higher productivity", "cool"}, Tip: "Consider working during cooler parts of the day"},
	{Match: []string{"drops", "Rain"}, Tip: "On rainy days, try focus techniques like Pomodoro"},
	{Match: []string{"peaks", "morning"}, Tip: "Schedule important tasks for your productive morning hours"},
}

// defaultTips are used when no rule fires.
var defaultTips = []string{
	"Take regular breaks to maintain focus",
	"Stay hydrated for better concentration",
}

// FormatInsights turns a correlation result into a user-facing insight.
func FormatInsights(result CorrelationResult) InsightResult {
	lines := result.Lines()

	var tips []string
	for _, rule := range tipRules {
		if anyContainsAll(lines, rule.Match) {
			tips = append(tips, rule.Tip)
		}
	}
	if len(tips) == 0 {
		tips = append([]string(nil), defaultTips...)
	}

	message := MsgKeepUsing
	if !result.Insufficient && len(result.Statements) > 0 {
		message = MsgPatternsFound
	}

	return InsightResult{
		Message:      message,
		Correlations: lines,
		Tips:         tips,
	}
}

func anyContainsAll(lines []string, phrases []string) bool {
	for _, line := range lines {
		all := true
		for _, p := range phrases {
			if !strings.Contains(line, p) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
