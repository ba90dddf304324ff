package app

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/weatherfocus/internal/server"
)

var (
	serveAddr      string
	serveAccessLog bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve insights as a read-only JSON API",
	Long: `Start an HTTP server exposing the analyses as JSON:

  GET /api/insights       correlation statements and tips
  GET /api/correlations   raw correlation statements
  GET /api/patterns       Pomodoro completion patterns
  GET /api/suggestions    productivity suggestions
  GET /api/feed           hourly, weather, and current insights
  GET /api/history        record counts per stream
  GET /healthz            liveness
  GET /metrics            Prometheus metrics

Examples:
  weatherfocus serve
  weatherfocus serve --addr :8089 --access-log`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: serve.addr, 127.0.0.1:8089)")
	serveCmd.Flags().BoolVar(&serveAccessLog, "access-log", false, "Write an Apache-style access log to stdout")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.close()

	addr := d.cfg.Serve.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	opts := server.Options{
		Service:  d.engine,
		Counter:  d.db,
		Gatherer: d.registry,
		Metrics:  d.metrics,
		Logger:   d.logger,
		Version:  appVersion,
	}
	if serveAccessLog {
		opts.AccessLog = os.Stdout
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals...)
	defer stop()

	return server.New(opts).ListenAndServe(ctx, addr)
}
