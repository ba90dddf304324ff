package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/weatherfocus/internal/collector"
	"github.com/blackwell-systems/weatherfocus/internal/output"
	"github.com/blackwell-systems/weatherfocus/internal/pomodoro"
	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

var (
	pomodoroRounds   int
	pomodoroWork     time.Duration
	pomodoroShort    time.Duration
	pomodoroLong     time.Duration
	pomodoroNoNotify bool
)

var pomodoroCmd = &cobra.Command{
	Use:   "pomodoro",
	Short: "Run a Pomodoro timer and record each session",
	Long: `Run work and break phases back to back, with a desktop notification at
each transition. Completed work phases are recorded as sessions. Stopping
during a work phase (ctrl-c) records it as abandoned.

Examples:
  weatherfocus pomodoro                  # run until stopped
  weatherfocus pomodoro --rounds 4       # stop after four work phases
  weatherfocus pomodoro --work 50m --short 10m`,
	RunE: runPomodoro,
}

func init() {
	pomodoroCmd.Flags().IntVar(&pomodoroRounds, "rounds", 0, "Stop after N completed work phases (0 runs until stopped)")
	pomodoroCmd.Flags().DurationVar(&pomodoroWork, "work", 0, "Work phase length (default: pomodoro.work)")
	pomodoroCmd.Flags().DurationVar(&pomodoroShort, "short", 0, "Short break length (default: pomodoro.short_break)")
	pomodoroCmd.Flags().DurationVar(&pomodoroLong, "long", 0, "Long break length (default: pomodoro.long_break)")
	pomodoroCmd.Flags().BoolVar(&pomodoroNoNotify, "no-notify", false, "Disable desktop notifications")
	rootCmd.AddCommand(pomodoroCmd)
}

// pomodoroDurations merges flag overrides onto the configured durations.
func pomodoroDurations(cfgWork, cfgShort, cfgLong time.Duration, cycles int) pomodoro.Durations {
	d := pomodoro.Durations{Work: cfgWork, ShortBreak: cfgShort, LongBreak: cfgLong, Cycles: cycles}
	if pomodoroWork > 0 {
		d.Work = pomodoroWork
	}
	if pomodoroShort > 0 {
		d.ShortBreak = pomodoroShort
	}
	if pomodoroLong > 0 {
		d.LongBreak = pomodoroLong
	}
	return d
}

func runPomodoro(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.close()

	pc := d.cfg.Pomodoro
	durations := pomodoroDurations(pc.Work, pc.ShortBreak, pc.LongBreak, pc.Cycles)
	timer := pomodoro.New(durations)

	ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals...)
	defer stop()

	w := cmd.OutOrStdout()
	interactive := output.IsTerminalWriter(w)

	record := func(s *tracker.PomodoroSession) {
		// The run context may already be cancelled when an abandoned
		// session arrives.
		added, err := d.db.AddPomodoro(context.WithoutCancel(ctx), *s)
		if err != nil {
			d.logger.Error("recording pomodoro session failed", "error", err)
			return
		}
		if added {
			d.metrics.ObserveSample(string(tracker.StreamPomodoro))
		}
	}

	hooks := pomodoro.Hooks{
		OnTick: func(st pomodoro.Status) {
			if !interactive {
				return
			}
			total := durations.For(st.Phase)
			fmt.Fprintf(w, "\r%s  ", output.Countdown(string(st.Phase),
				int(st.Remaining/time.Second), int(total/time.Second), 20))
		},
		OnTransition: func(tr pomodoro.Transition) {
			if tr.Session != nil {
				record(tr.Session)
			}
			if tr.From == tr.To {
				fmt.Fprintf(w, "\n%s Pomodoro abandoned after %s\n",
					output.StyleWarning.Render("!"), time.Duration(tr.Session.Duration)*time.Second)
				return
			}
			msg := tr.Message()
			if interactive {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "[%s] %s %s\n", time.Now().Format("15:04:05"), output.StyleSuccess.Render("✓"), msg)
			if !pomodoroNoNotify {
				_ = collector.Notify(collector.Alert{Level: "info", Title: "Pomodoro", Message: msg, Time: time.Now()})
			}
		},
	}

	fmt.Fprintf(w, "Pomodoro: %s work, %s short break, %s long break every %d\n",
		durations.Work, durations.ShortBreak, durations.LongBreak, durations.Cycles)

	err = pomodoro.Run(ctx, timer, time.Second, pomodoroRounds, hooks)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "\nStopped.")
		return nil
	}
	return err
}
