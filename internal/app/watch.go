package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/weatherfocus/internal/collector"
	"github.com/blackwell-systems/weatherfocus/internal/config"
	"github.com/blackwell-systems/weatherfocus/internal/logging"
)

var (
	watchDaemon               bool
	watchStop                 bool
	watchQuiet                bool
	watchWeatherInterval      time.Duration
	watchProductivityInterval time.Duration
	watchNoWeather            bool
	watchNoActivity           bool
)

// minWatchInterval keeps polling from hammering the weather API.
const minWatchInterval = 30 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Record weather and activity in the background and alert on changes",
	Long: `Run a collector that records the current weather and an ActivityWatch
summary at fixed intervals. After each new sample the correlations are
recomputed, and desktop notifications and/or terminal alerts are emitted for
focus drops, weather changes that historically hurt your focus, and newly
discovered patterns.

Examples:
  weatherfocus watch                              # run in foreground (ctrl-c to stop)
  weatherfocus watch --daemon                     # run in background, write PID file
  weatherfocus watch --weather-interval 1h        # default: watch.weather_interval (30m)
  weatherfocus watch --no-weather                 # activity only
  weatherfocus watch --stop                       # stop the background daemon`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "Run in background mode (write PID file, log to file)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "Stop a running background daemon")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "Suppress terminal output, only send notifications")
	watchCmd.Flags().DurationVar(&watchWeatherInterval, "weather-interval", 0, "Weather sampling interval (e.g. 30m)")
	watchCmd.Flags().DurationVar(&watchProductivityInterval, "productivity-interval", 0, "Activity sampling interval (e.g. 15m)")
	watchCmd.Flags().BoolVar(&watchNoWeather, "no-weather", false, "Do not sample weather")
	watchCmd.Flags().BoolVar(&watchNoActivity, "no-activity", false, "Do not sample ActivityWatch")
	rootCmd.AddCommand(watchCmd)
}

// pidFilePath returns the path to the daemon PID file.
func pidFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.pid")
}

// logFilePath returns the path to the daemon log file.
func logFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.log")
}

// watchIntervals resolves flag overrides against config and validates them.
func watchIntervals(cfg config.Watch) (weather, productivity time.Duration, err error) {
	weather, productivity = cfg.WeatherInterval, cfg.ProductivityInterval
	if watchWeatherInterval > 0 {
		weather = watchWeatherInterval
	}
	if watchProductivityInterval > 0 {
		productivity = watchProductivityInterval
	}
	if weather < minWatchInterval || productivity < minWatchInterval {
		return 0, 0, fmt.Errorf("intervals must be at least %s, got weather %s, productivity %s",
			minWatchInterval, weather, productivity)
	}
	return weather, productivity, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchStop {
		return stopDaemon(cmd.OutOrStdout())
	}

	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.close()

	weatherEvery, productivityEvery, err := watchIntervals(d.cfg.Watch)
	if err != nil {
		return err
	}

	if watchDaemon {
		return runDaemon(cmd.Context(), d, weatherEvery, productivityEvery)
	}
	return runForeground(cmd.Context(), cmd.OutOrStdout(), d, weatherEvery, productivityEvery)
}

// newCollector wires the configured sources into a collector.
func newCollector(d *deps, weatherEvery, productivityEvery time.Duration, alertFn func(collector.Alert)) *collector.Collector {
	opts := collector.Options{
		Sink:                 d.db,
		Analysis:             d.engine,
		WeatherInterval:      weatherEvery,
		ProductivityInterval: productivityEvery,
		AlertFn:              alertFn,
		Logger:               d.logger,
		Metrics:              d.metrics,
	}
	if !watchNoWeather {
		if wc := newWeatherClient(d.cfg); wc.Configured() {
			opts.Weather = wc
		} else {
			d.logger.Warn("weather sampling disabled: no OpenWeatherMap API key")
		}
	}
	if !watchNoActivity {
		opts.Activity = newActivityClient(d.cfg)
	}
	return collector.New(opts)
}

// runForeground runs the collector with live terminal output.
func runForeground(parent context.Context, w io.Writer, d *deps, weatherEvery, productivityEvery time.Duration) error {
	ctx, stop := signal.NotifyContext(parent, shutdownSignals...)
	defer stop()

	if !watchQuiet {
		fmt.Fprintf(w, "weatherfocus watching... (weather every %s, activity every %s)\n", weatherEvery, productivityEvery)
	}

	alertFn := func(a collector.Alert) {
		if d.cfg.Watch.Notify {
			_ = collector.Notify(a)
		}
		if !watchQuiet {
			printAlert(w, a)
		}
	}

	c := newCollector(d, weatherEvery, productivityEvery, alertFn)

	if !watchQuiet {
		counts, err := d.db.Counts(ctx)
		if err == nil {
			fmt.Fprintf(w, "[%s] %s Baseline: %d weather, %d productivity, %d pomodoro records\n",
				time.Now().Format("15:04:05"), checkMark(), counts.Weather, counts.Productivity, counts.Pomodoro)
		}
	}

	err := c.Run(ctx)
	if errors.Is(err, context.Canceled) {
		if !watchQuiet {
			fmt.Fprintln(w, "\nStopped.")
		}
		return nil
	}
	return err
}

// runDaemon sets up PID and log files, then runs the collector. The actual
// backgrounding should be done by the caller (nohup, &, etc.) since Go
// cannot reliably fork.
func runDaemon(parent context.Context, d *deps, weatherEvery, productivityEvery time.Duration) error {
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	if pid, err := readPID(); err == nil {
		if processExists(pid) {
			return fmt.Errorf("daemon already running (PID %d). Use --stop to stop it", pid)
		}
		// Stale PID file.
		_ = os.Remove(pidFilePath())
	}

	pid := os.Getpid()
	if err := os.WriteFile(pidFilePath(), []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer func() { _ = os.Remove(pidFilePath()) }()

	logFile, err := os.OpenFile(logFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	// The daemon logs structured records to its log file instead of stderr.
	d.setLogger(logging.New(logFile, d.cfg.Log.Level, d.cfg.Log.Format))

	ctx, stop := signal.NotifyContext(parent, shutdownSignals...)
	defer stop()

	d.logger.Info("daemon started", "pid", pid, "weather_interval", weatherEvery, "productivity_interval", productivityEvery)

	alertFn := func(a collector.Alert) {
		if d.cfg.Watch.Notify {
			_ = collector.Notify(a)
		}
		d.logger.Info("alert", "level", a.Level, "title", a.Title, "message", a.Message)
	}

	err = newCollector(d, weatherEvery, productivityEvery, alertFn).Run(ctx)
	if errors.Is(err, context.Canceled) {
		d.logger.Info("daemon stopped")
		return nil
	}
	return err
}

// stopDaemon terminates the daemon recorded in the PID file.
func stopDaemon(w io.Writer) error {
	pid, err := readPID()
	if err != nil {
		return fmt.Errorf("no daemon running (could not read PID file: %v)", err)
	}
	defer func() { _ = os.Remove(pidFilePath()) }()

	if !processExists(pid) {
		return fmt.Errorf("no daemon running (PID %d is not active, cleaned up stale PID file)", pid)
	}
	if err := terminate(pid); err != nil {
		return fmt.Errorf("failed to stop daemon (PID %d): %w", pid, err)
	}
	fmt.Fprintf(w, "Stopped weatherfocus daemon (PID %d)\n", pid)
	return nil
}

// readPID reads the daemon PID from the PID file.
func readPID() (int, error) {
	data, err := os.ReadFile(pidFilePath())
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// printAlert formats and prints an alert to the terminal.
func printAlert(w io.Writer, a collector.Alert) {
	timestamp := a.Time.Format("15:04:05")
	icon := alertIcon(a.Level)
	fmt.Fprintf(w, "[%s] %s %s\n", timestamp, icon, a.Title)
	if a.Message != "" {
		fmt.Fprintf(w, "         %s\n", a.Message)
	}
}

// alertIcon returns the terminal indicator for an alert level.
func alertIcon(level string) string {
	switch level {
	case "critical":
		return "\xf0\x9f\x94\xb4" // red circle
	case "warning":
		return "\xe2\x9a\xa0\xef\xb8\x8f" // warning sign
	case "info":
		return "\xe2\x9c\x93" // check mark
	default:
		return " "
	}
}

// checkMark returns a terminal check mark indicator.
func checkMark() string {
	return "\xe2\x9c\x93"
}
