package activity

import (
	"math"
	"sort"
	"time"

	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

// topAppCount is how many apps a summary lists.
const topAppCount = 3

// Event is one ActivityWatch window event. Duration is in seconds.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Duration  float64   `json:"duration"`
	Data      struct {
		App   string `json:"app"`
		Title string `json:"title"`
	} `json:"data"`
}

type appUsage struct {
	app     string
	minutes float64
	first   int
}

// Summarize turns window events into a productivity sample. Neutral and
// uncategorized time counts toward neither focus nor distraction.
func Summarize(events []Event, now time.Time) tracker.ProductivitySample {
	var focused, distracted float64
	usage := map[string]*appUsage{}

	for i, ev := range events {
		app := ev.Data.App
		if app == "" {
			app = "unknown"
		}
		app = CleanAppName(app)
		minutes := ev.Duration / 60

		u, ok := usage[app]
		if !ok {
			u = &appUsage{app: app, first: i}
			usage[app] = u
		}
		u.minutes += minutes

		switch Categorize(app) {
		case Productive:
			focused += minutes
		case Distracting:
			distracted += minutes
		}
	}

	return tracker.ProductivitySample{
		ID:                tracker.NewID(),
		Timestamp:         now,
		FocusedTime:       int(math.Round(focused)),
		DistractedTime:    int(math.Round(distracted)),
		ProductivityScore: tracker.ScoreFloat(focused, distracted),
		AppsUsed:          topApps(usage),
	}
}

// topApps returns the most used non-neutral apps, or the most used apps
// overall when every app is neutral.
func topApps(usage map[string]*appUsage) []string {
	all := make([]*appUsage, 0, len(usage))
	for _, u := range usage {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].minutes != all[j].minutes {
			return all[i].minutes > all[j].minutes
		}
		return all[i].first < all[j].first
	})

	var picked []string
	for _, u := range all {
		if Categorize(u.app) == Neutral {
			continue
		}
		picked = append(picked, u.app)
		if len(picked) == topAppCount {
			return picked
		}
	}
	if len(picked) > 0 {
		return picked
	}

	for _, u := range all {
		picked = append(picked, u.app)
		if len(picked) == topAppCount {
			break
		}
	}
	return picked
}
