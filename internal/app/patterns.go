package app

import (
	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Show Pomodoro completion patterns",
	Long: `Analyze recorded Pomodoro sessions for completion rates by time of day and
weather conditions. Needs at least five sessions.`,
	RunE: runPatterns,
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.close()

	res := d.engine.Pomodoro(cmd.Context())
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	renderPatterns(cmd.OutOrStdout(), res)
	return nil
}
