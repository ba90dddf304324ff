package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/blackwell-systems/weatherfocus/internal/analyzer"
	"github.com/blackwell-systems/weatherfocus/internal/output"
	"github.com/blackwell-systems/weatherfocus/internal/suggest"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderInsights(w io.Writer, r analyzer.InsightResult) {
	fmt.Fprintln(w, output.Section("Weather & Focus Insights"))
	fmt.Fprintf(w, " %s\n\n", output.StyleBold.Render(r.Message))
	fmt.Fprint(w, output.Bullets(r.Correlations))
	if len(r.Tips) > 0 {
		fmt.Fprintf(w, "\n %s\n", output.StyleMuted.Render("Tips"))
		fmt.Fprint(w, output.Bullets(r.Tips))
	}
}

func renderPatterns(w io.Writer, r analyzer.PatternResult) {
	fmt.Fprintln(w, output.Section("Pomodoro Patterns"))
	fmt.Fprintf(w, " %s\n", output.StyleBold.Render(r.Message))
	if len(r.Patterns) > 0 {
		fmt.Fprintln(w)
		fmt.Fprint(w, output.Bullets(r.Patterns))
	}
}

func renderSuggestions(w io.Writer, r suggest.Result) {
	fmt.Fprintln(w, output.Section("Suggestions"))
	source := r.Source
	if r.Provider != "" {
		source = fmt.Sprintf("%s (%s)", r.Source, r.Provider)
	}
	fmt.Fprintf(w, " %s\n\n", output.StyleMuted.Render("source: "+source))
	for i, s := range r.Suggestions {
		fmt.Fprintf(w, "  %s %s\n", output.StyleHeader.Render(fmt.Sprintf("%d.", i+1)), s)
	}
}

func renderFeed(w io.Writer, r analyzer.FeedResult) {
	fmt.Fprintln(w, output.Section("Time of Day"))
	fmt.Fprint(w, output.Bullets(r.TimeInsights))
	if len(r.WeatherInsights) > 0 {
		fmt.Fprintln(w, output.Section("Weather"))
		fmt.Fprint(w, output.Bullets(r.WeatherInsights))
	}
	if len(r.CurrentTips) > 0 {
		fmt.Fprintln(w, output.Section("Right Now"))
		fmt.Fprint(w, output.Bullets(r.CurrentTips))
	}
}
