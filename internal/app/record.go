package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/weatherfocus/internal/output"
	"github.com/blackwell-systems/weatherfocus/internal/tracker"
	"github.com/blackwell-systems/weatherfocus/internal/weather"
)

var (
	recWeatherTemp       float64
	recWeatherFeelsLike  float64
	recWeatherConditions string
	recWeatherHumidity   int
	recWeatherWind       float64

	recFocused    int
	recDistracted int
	recApps       []string

	recPomodoroDuration  time.Duration
	recPomodoroCompleted bool
	recPomodoroCycle     int
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a weather, productivity, or Pomodoro sample",
	Long: `Append one sample to history. Weather and productivity are fetched from
OpenWeatherMap and ActivityWatch unless values are given on the command line.

Examples:
  weatherfocus record weather                              # fetch current weather
  weatherfocus record weather --conditions Rain --temp 12
  weatherfocus record productivity                         # summarize ActivityWatch
  weatherfocus record productivity --focused 90 --distracted 30
  weatherfocus record pomodoro --duration 25m --completed=false`,
}

var recordWeatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Record a weather sample",
	Args:  cobra.NoArgs,
	RunE:  runRecordWeather,
}

var recordProductivityCmd = &cobra.Command{
	Use:   "productivity",
	Short: "Record a productivity sample",
	Args:  cobra.NoArgs,
	RunE:  runRecordProductivity,
}

var recordPomodoroCmd = &cobra.Command{
	Use:   "pomodoro",
	Short: "Record a Pomodoro session",
	Args:  cobra.NoArgs,
	RunE:  runRecordPomodoro,
}

func init() {
	recordWeatherCmd.Flags().Float64Var(&recWeatherTemp, "temp", 0, "Temperature in °C")
	recordWeatherCmd.Flags().Float64Var(&recWeatherFeelsLike, "feels-like", 0, "Feels-like temperature in °C")
	recordWeatherCmd.Flags().StringVar(&recWeatherConditions, "conditions", "", "Conditions label, e.g. Clear, Rain, Clouds (omit to fetch)")
	recordWeatherCmd.Flags().IntVar(&recWeatherHumidity, "humidity", 0, "Relative humidity in percent")
	recordWeatherCmd.Flags().Float64Var(&recWeatherWind, "wind", 0, "Wind speed in m/s")

	recordProductivityCmd.Flags().IntVar(&recFocused, "focused", 0, "Focused minutes")
	recordProductivityCmd.Flags().IntVar(&recDistracted, "distracted", 0, "Distracted minutes")
	recordProductivityCmd.Flags().StringSliceVar(&recApps, "app", nil, "Apps used (can specify multiple)")

	recordPomodoroCmd.Flags().DurationVar(&recPomodoroDuration, "duration", 0, "Session length (default: pomodoro.work)")
	recordPomodoroCmd.Flags().BoolVar(&recPomodoroCompleted, "completed", true, "Whether the session was completed")
	recordPomodoroCmd.Flags().IntVar(&recPomodoroCycle, "cycle", 0, "Cycle index of the session")

	recordCmd.AddCommand(recordWeatherCmd, recordProductivityCmd, recordPomodoroCmd)
	rootCmd.AddCommand(recordCmd)
}

func runRecordWeather(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.close()

	var sample tracker.WeatherSample
	if recWeatherConditions != "" {
		sample = tracker.WeatherSample{
			ID:         tracker.NewID(),
			Timestamp:  time.Now(),
			Temp:       recWeatherTemp,
			FeelsLike:  recWeatherFeelsLike,
			Conditions: recWeatherConditions,
			Humidity:   recWeatherHumidity,
			WindSpeed:  recWeatherWind,
			Location:   d.cfg.Location.Name,
		}
	} else {
		sample, err = newWeatherClient(d.cfg).Current(cmd.Context())
		if errors.Is(err, weather.ErrNoAPIKey) {
			return fmt.Errorf("%w (set OPENWEATHER_API_KEY or pass --conditions)", err)
		}
		if err != nil {
			return fmt.Errorf("fetching weather: %w", err)
		}
	}

	added, err := d.db.AddWeather(cmd.Context(), sample)
	if err != nil {
		return fmt.Errorf("recording weather: %w", err)
	}
	if added {
		d.metrics.ObserveSample(string(tracker.StreamWeather))
	}
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), sample)
	}
	reportRecorded(cmd, added, "weather", fmt.Sprintf("%s, %.0f°C", sample.Conditions, sample.Temp))
	return nil
}

func runRecordProductivity(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.close()

	var sample tracker.ProductivitySample
	flags := cmd.Flags()
	if flags.Changed("focused") || flags.Changed("distracted") {
		if recFocused < 0 || recDistracted < 0 {
			return errors.New("--focused and --distracted must not be negative")
		}
		sample = tracker.ProductivitySample{
			ID:                tracker.NewID(),
			Timestamp:         time.Now(),
			FocusedTime:       recFocused,
			DistractedTime:    recDistracted,
			ProductivityScore: tracker.Score(recFocused, recDistracted),
			AppsUsed:          recApps,
		}
	} else {
		sample, err = newActivityClient(d.cfg).Current(cmd.Context())
		if err != nil {
			return fmt.Errorf("reading ActivityWatch at %s: %w", d.cfg.ActivityWatch.Endpoint, err)
		}
	}

	added, err := d.db.AddProductivity(cmd.Context(), sample)
	if err != nil {
		return fmt.Errorf("recording productivity: %w", err)
	}
	if added {
		d.metrics.ObserveSample(string(tracker.StreamProductivity))
	}
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), sample)
	}
	detail := fmt.Sprintf("score %d, %dm focused, %dm distracted",
		sample.ProductivityScore, sample.FocusedTime, sample.DistractedTime)
	if len(sample.AppsUsed) > 0 {
		detail += " (" + strings.Join(sample.AppsUsed, ", ") + ")"
	}
	reportRecorded(cmd, added, "productivity", detail)
	return nil
}

func runRecordPomodoro(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.close()

	duration := recPomodoroDuration
	if duration <= 0 {
		duration = d.cfg.Pomodoro.Work
	}
	session := tracker.PomodoroSession{
		ID:        tracker.NewID(),
		Timestamp: time.Now(),
		Duration:  int(duration.Seconds()),
		Completed: recPomodoroCompleted,
		Cycle:     recPomodoroCycle,
	}

	added, err := d.db.AddPomodoro(cmd.Context(), session)
	if err != nil {
		return fmt.Errorf("recording pomodoro: %w", err)
	}
	if added {
		d.metrics.ObserveSample(string(tracker.StreamPomodoro))
	}
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), session)
	}
	state := "completed"
	if !session.Completed {
		state = "abandoned"
	}
	reportRecorded(cmd, added, "pomodoro", fmt.Sprintf("%s, %s", state, duration))
	return nil
}

func reportRecorded(cmd *cobra.Command, added bool, kind, detail string) {
	w := cmd.OutOrStdout()
	if !added {
		fmt.Fprintf(w, "%s %s sample already recorded\n", output.StyleMuted.Render("-"), kind)
		return
	}
	fmt.Fprintf(w, "%s Recorded %s: %s\n", output.StyleSuccess.Render("✓"), kind, detail)
}
