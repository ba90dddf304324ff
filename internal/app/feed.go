package app

import (
	"github.com/spf13/cobra"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show hourly, weather, and right-now insights",
	Long: `Show your best and worst hours, how each weather condition affects your
focused time, and tips for the current conditions.`,
	RunE: runFeed,
}

func init() {
	rootCmd.AddCommand(feedCmd)
}

func runFeed(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.close()

	res := d.engine.Feed(cmd.Context())
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	renderFeed(cmd.OutOrStdout(), res)
	return nil
}
