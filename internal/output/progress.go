package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ScoreBar renders a visual progress bar for a 0-100 score.
// Example: "████████░░ 80/100"
func ScoreBar(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((score / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s", ScoreStyle(score).Render(bar), StyleMuted.Render(fmt.Sprintf("%.0f/100", score)))
}

// ScoreStyle picks the style for a productivity score.
func ScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 75:
		return StyleSuccess
	case score >= 50:
		return StyleWarning
	default:
		return StyleError
	}
}

// Countdown renders a pomodoro countdown with elapsed progress.
// Example: "work ██████░░░░ 10:00 left"
func Countdown(phase string, remaining, total int, width int) string {
	if width <= 0 {
		width = 20
	}
	done := 0
	if total > 0 {
		done = (total - remaining) * width / total
	}
	if done < 0 {
		done = 0
	}
	if done > width {
		done = width
	}
	bar := strings.Repeat("█", done) + strings.Repeat("░", width-done)
	return fmt.Sprintf("%s %s %s",
		StyleBold.Render(phase),
		StyleHeader.Render(bar),
		StyleMuted.Render(fmt.Sprintf("%02d:%02d left", remaining/60, remaining%60)))
}

// Bullets renders each line as an indented bullet.
func Bullets(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString("  • ")
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
