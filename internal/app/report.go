package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

// runReport prints every analysis from a single history load.
func runReport(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.close()

	report := d.engine.Report(cmd.Context())
	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, report)
	}

	fmt.Fprintln(w, "weatherfocus", appVersion)
	renderInsights(w, report.Insights)
	renderPatterns(w, report.Patterns)
	renderSuggestions(w, report.Suggestions)
	renderFeed(w, report.Feed)
	fmt.Fprintln(w)
	return nil
}
