package pomodoro

import (
	"context"
	"time"
)

// Hooks receive timer events from Run. Any hook may be nil.
type Hooks struct {
	OnTick       func(Status)
	OnTransition func(Transition)
}

// Run drives t with a ticker until ctx is done or rounds work phases have
// completed (zero means run until cancelled). Phases start automatically.
// On cancellation an in-progress work phase is abandoned and its incomplete
// session, if any, is delivered through OnTransition with To set to From.
func Run(ctx context.Context, t *Timer, interval time.Duration, rounds int, hooks Hooks) error {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	t.Start(time.Now())
	for {
		select {
		case <-ctx.Done():
			if s := t.Abandon(time.Now()); s != nil && hooks.OnTransition != nil {
				hooks.OnTransition(Transition{From: PhaseWork, To: PhaseWork, Session: s})
			}
			return ctx.Err()
		case now := <-ticker.C:
			if tr, ok := t.Tick(now); ok {
				if hooks.OnTransition != nil {
					hooks.OnTransition(tr)
				}
				if rounds > 0 && tr.From == PhaseWork && t.completed >= rounds {
					return nil
				}
				t.Start(now)
			}
			if hooks.OnTick != nil {
				hooks.OnTick(t.Status(now))
			}
		}
	}
}
