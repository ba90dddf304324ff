package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/weatherfocus/internal/output"
	"github.com/blackwell-systems/weatherfocus/internal/store"
	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

var (
	historyClear bool
	historyLast  int
)

var historyCmd = &cobra.Command{
	Use:   "history [stream]",
	Short: "Show or clear recorded history",
	Long: `Without arguments, show how many records each stream holds against its
retention limit. With a stream name, list its records in the order they
were recorded.

Examples:
  weatherfocus history
  weatherfocus history weatherHistory --last 5
  weatherfocus history pomodoroHistory --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete every record in the stream")
	historyCmd.Flags().IntVar(&historyLast, "last", 0, "Show only the last N records")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.close()

	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	if len(args) == 0 {
		if historyClear {
			return fmt.Errorf("--clear requires a stream")
		}
		counts, err := d.db.Counts(ctx)
		if err != nil {
			return fmt.Errorf("counting history: %w", err)
		}
		if flagJSON {
			return writeJSON(w, counts)
		}
		renderCounts(cmd, counts, d.db.Limits())
		return nil
	}

	stream, ok := tracker.ParseStream(args[0])
	if !ok {
		return fmt.Errorf("unknown stream %q (want weatherHistory, productivityHistory, or pomodoroHistory)", args[0])
	}

	if historyClear {
		if err := d.db.Clear(ctx, stream); err != nil {
			return fmt.Errorf("clearing %s: %w", stream, err)
		}
		fmt.Fprintf(w, "%s Cleared %s\n", output.StyleSuccess.Render("✓"), stream)
		return nil
	}

	h := d.engine.Load(ctx)
	var tbl *output.Table
	var records any
	switch stream {
	case tracker.StreamWeather:
		rows := lastN(h.Weather, historyLast)
		records = rows
		tbl = output.NewTable("Time", "Conditions", "Temp", "Humidity", "Wind")
		for _, s := range rows {
			tbl.AddRow(s.Timestamp.Local().Format("2006-01-02 15:04"), s.Conditions,
				fmt.Sprintf("%.0f°C", s.Temp), fmt.Sprintf("%d%%", s.Humidity), fmt.Sprintf("%.1f m/s", s.WindSpeed))
		}
	case tracker.StreamProductivity:
		rows := lastN(h.Productivity, historyLast)
		records = rows
		tbl = output.NewTable("Time", "Score", "Focused", "Distracted", "Apps")
		for _, s := range rows {
			tbl.AddRow(s.Timestamp.Local().Format("2006-01-02 15:04"),
				output.ScoreStyle(float64(s.ProductivityScore)).Render(strconv.Itoa(s.ProductivityScore)),
				fmt.Sprintf("%dm", s.FocusedTime), fmt.Sprintf("%dm", s.DistractedTime), strings.Join(s.AppsUsed, ", "))
		}
	case tracker.StreamPomodoro:
		rows := lastN(h.Pomodoro, historyLast)
		records = rows
		tbl = output.NewTable("Time", "Duration", "Completed", "Cycle")
		for _, s := range rows {
			done := output.StyleError.Render("no")
			if s.Completed {
				done = output.StyleSuccess.Render("yes")
			}
			tbl.AddRow(s.Timestamp.Local().Format("2006-01-02 15:04"),
				fmt.Sprintf("%dm", s.Duration/60), done, strconv.Itoa(s.Cycle))
		}
	}

	if flagJSON {
		return writeJSON(w, records)
	}
	fmt.Fprint(w, tbl.Render())
	return nil
}

func renderCounts(cmd *cobra.Command, counts store.Counts, limits store.Limits) {
	tbl := output.NewTable("Stream", "Records", "Limit").AlignRight(1, 2)
	tbl.AddRow(string(tracker.StreamWeather), strconv.Itoa(counts.Weather), strconv.Itoa(limits.Weather))
	tbl.AddRow(string(tracker.StreamProductivity), strconv.Itoa(counts.Productivity), strconv.Itoa(limits.Productivity))
	tbl.AddRow(string(tracker.StreamPomodoro), strconv.Itoa(counts.Pomodoro), strconv.Itoa(limits.Pomodoro))
	fmt.Fprint(cmd.OutOrStdout(), tbl.Render())
}

// lastN returns the trailing n elements of s, or all of s when n <= 0.
func lastN[T any](s []T, n int) []T {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}
