// Package pomodoro implements the work/break timer that produces Pomodoro
// sessions.
package pomodoro

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

// Phase is the current timer phase.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short-break"
	PhaseLongBreak  Phase = "long-break"
)

// IsBreak reports whether p is either break phase.
func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// Durations configures a Timer.
type Durations struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
	// Cycles is the number of work phases before a long break.
	Cycles int
}

// DefaultDurations is the classic 25/5/15 cycle with a long break every
// fourth work phase.
var DefaultDurations = Durations{
	Work:       25 * time.Minute,
	ShortBreak: 5 * time.Minute,
	LongBreak:  15 * time.Minute,
	Cycles:     4,
}

// For returns the configured length of phase p.
func (d Durations) For(p Phase) time.Duration {
	switch p {
	case PhaseShortBreak:
		return d.ShortBreak
	case PhaseLongBreak:
		return d.LongBreak
	default:
		return d.Work
	}
}

// Transition describes a completed phase. Session is set only when a work
// phase completed.
type Transition struct {
	From    Phase
	To      Phase
	Session *tracker.PomodoroSession
}

// Status is a point-in-time view of the timer.
type Status struct {
	Phase     Phase         `json:"phase"`
	Remaining time.Duration `json:"remaining"`
	Running   bool          `json:"running"`
	Completed int           `json:"completed"`
	Cycles    int           `json:"cycles"`
}

// Timer is a phase state machine driven by explicit timestamps. It is not
// safe for concurrent use.
type Timer struct {
	d         Durations
	phase     Phase
	remaining time.Duration
	running   bool
	resumedAt time.Time
	completed int
}

// New returns a timer ready to start a work phase.
func New(d Durations) *Timer {
	if d.Cycles < 1 {
		d.Cycles = DefaultDurations.Cycles
	}
	t := &Timer{d: d}
	t.Reset()
	return t
}

// Reset stops the timer and returns to the first work phase.
func (t *Timer) Reset() {
	t.phase = PhaseWork
	t.remaining = t.d.Work
	t.running = false
	t.completed = 0
}

// Start resumes the current phase. Starting a running timer is a no-op.
func (t *Timer) Start(now time.Time) {
	if t.running {
		return
	}
	t.running = true
	t.resumedAt = now
}

// Pause freezes the remaining time.
func (t *Timer) Pause(now time.Time) {
	if !t.running {
		return
	}
	t.remaining = t.Remaining(now)
	t.running = false
}

// Remaining returns the time left in the current phase, never negative.
func (t *Timer) Remaining(now time.Time) time.Duration {
	r := t.remaining
	if t.running {
		r -= now.Sub(t.resumedAt)
	}
	if r < 0 {
		return 0
	}
	return r
}

// Status reports the timer state at now.
func (t *Timer) Status(now time.Time) Status {
	return Status{
		Phase:     t.phase,
		Remaining: t.Remaining(now),
		Running:   t.running,
		Completed: t.completed,
		Cycles:    t.d.Cycles,
	}
}

// Tick completes the current phase when its time is up. The timer stops
// after each phase; call Start to begin the next one.
func (t *Timer) Tick(now time.Time) (Transition, bool) {
	if !t.running || t.Remaining(now) > 0 {
		return Transition{}, false
	}

	tr := Transition{From: t.phase}
	t.running = false

	if t.phase == PhaseWork {
		tr.Session = &tracker.PomodoroSession{
			ID:        tracker.NewID(),
			Timestamp: now,
			Duration:  int(t.d.Work / time.Second),
			Completed: true,
			Cycle:     t.completed,
		}
		t.completed++
		if t.completed%t.d.Cycles == 0 {
			t.phase = PhaseLongBreak
			t.remaining = t.d.LongBreak
		} else {
			t.phase = PhaseShortBreak
			t.remaining = t.d.ShortBreak
		}
	} else {
		t.phase = PhaseWork
		t.remaining = t.d.Work
	}

	tr.To = t.phase
	return tr, true
}

// Abandon ends an in-progress work phase early. It returns an incomplete
// session covering the elapsed work time, or nil when no work was done.
// The timer is reset to a fresh work phase of the same cycle.
func (t *Timer) Abandon(now time.Time) *tracker.PomodoroSession {
	if t.phase != PhaseWork {
		return nil
	}
	elapsed := t.d.Work - t.Remaining(now)
	t.running = false
	t.remaining = t.d.Work
	if elapsed < time.Second {
		return nil
	}
	return &tracker.PomodoroSession{
		ID:        tracker.NewID(),
		Timestamp: now,
		Duration:  int(elapsed / time.Second),
		Completed: false,
		Cycle:     t.completed,
	}
}

// Message is the notification text for a transition.
func (tr Transition) Message() string {
	if tr.From == PhaseWork {
		if tr.To == PhaseLongBreak {
			return "Pomodoro completed! Time for a long break."
		}
		return "Pomodoro completed! Time for a break."
	}
	return "Break is over! Ready for next session."
}

// FormatRemaining renders a duration as MM:SS.
func FormatRemaining(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
