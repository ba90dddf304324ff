package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var insightsRaw bool

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show how weather and time of day relate to your productivity",
	Long: `Correlate recorded productivity with recorded weather, pairing the two
histories by position. Statements are produced per condition, per
temperature band, and per time of day once at least three samples of each
stream exist.

Examples:
  weatherfocus insights
  weatherfocus insights --raw      # correlation statements only
  weatherfocus insights --json`,
	RunE: runInsights,
}

func init() {
	insightsCmd.Flags().BoolVar(&insightsRaw, "raw", false, "Print correlation statements without tips")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.close()

	w := cmd.OutOrStdout()
	if insightsRaw {
		res := d.engine.Correlations(cmd.Context())
		if flagJSON {
			return writeJSON(w, res)
		}
		for _, line := range res.Lines() {
			fmt.Fprintln(w, line)
		}
		return nil
	}

	res := d.engine.Insights(cmd.Context())
	if flagJSON {
		return writeJSON(w, res)
	}
	renderInsights(w, res)
	return nil
}
