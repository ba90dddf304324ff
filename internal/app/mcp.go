package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/weatherfocus/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server exposing insights as tools",
	Long: `Start a Model Context Protocol stdio server that an AI assistant can
query during a session. The server exposes four tools:

  get_insights            Weather and time-of-day correlations with tips
  get_pomodoro_patterns   Pomodoro completion patterns
  get_suggestions         Three suggestions for the current conditions
  get_feed                Hourly, weather, and right-now insights

Add to your assistant's MCP configuration:
  {"mcpServers":{"weatherfocus":{"command":"weatherfocus","args":["mcp"]}}}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.close()

	srv := mcp.NewServer(d.engine, appVersion, d.logger)
	return srv.Run(cmd.Context(), os.Stdin, os.Stdout)
}
