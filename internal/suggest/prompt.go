package suggest

import (
	"fmt"
	"strings"
)

// remoteMaxTokens and remoteTemperature are shared by every provider.
const (
	remoteMaxTokens   = 100
	remoteTemperature = 0.7
)

const systemPrompt = `You are a concise productivity coach. Reply with exactly three short, practical suggestions, one per line, with no introduction or closing remarks.`

// contextPrompt describes the full snapshot.
func contextPrompt(sc Context) string {
	var sb strings.Builder
	sb.WriteString("Give 3 productivity suggestions based on:\n")
	fmt.Fprintf(&sb, "- Current weather: %s (%s°C)\n", sc.Weather.Conditions, formatTemp(sc.Weather.Temp))
	fmt.Fprintf(&sb, "- Recent productivity: %d/100\n", sc.Productivity.Score)
	fmt.Fprintf(&sb, "- Focus duration: %d minutes\n", sc.Productivity.FocusedTime)
	if sc.TimeOfDay != "" {
		fmt.Fprintf(&sb, "- Time of day: %s\n", sc.TimeOfDay)
	}
	return sb.String()
}

// shortPrompt suits small completion models that continue text.
func shortPrompt(sc Context) string {
	return fmt.Sprintf("Provide 3 concise tips for %s work during %s weather:", sc.TimeOfDay, sc.Weather.Conditions)
}

func formatTemp(t float64) string {
	if t == float64(int64(t)) {
		return fmt.Sprintf("%d", int64(t))
	}
	return fmt.Sprintf("%.1f", t)
}
