package activity

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC)

func event(app string, minutes float64) Event {
	var e Event
	e.Data.App = app
	e.Duration = minutes * 60
	return e
}

func TestCleanAppName(t *testing.T) {
	tests := map[string]string{
		"Code.exe":           "code",
		"  Firefox.app ":     "firefox",
		"Visual Studio Code": "visual studio code",
		"":                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanAppName(in), in)
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		app  string
		want Category
	}{
		{"code", Productive},
		{"gnome-terminal", Productive},
		{"notepad++", Productive},
		{"youtube", Distracting},
		{"steam", Distracting},
		{"chrome", Neutral},
		{"calendar", Neutral},
		{"blender", Uncategorized},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.app), tt.app)
	}
}

func TestSummarize(t *testing.T) {
	events := []Event{
		event("Code.exe", 90),
		event("chrome", 200),
		event("Discord", 20),
		event("Terminal", 30),
		event("code", 0.4),
		event("Spotify", 10),
	}

	got := Summarize(events, now)
	assert.Equal(t, now, got.Timestamp)
	assert.Equal(t, 120, got.FocusedTime)
	assert.Equal(t, 30, got.DistractedTime)
	assert.Equal(t, 80, got.ProductivityScore)
	assert.Equal(t, []string{"code", "terminal", "discord"}, got.AppsUsed)
}

func TestSummarize_AllNeutral(t *testing.T) {
	got := Summarize([]Event{event("chrome", 10), event("Mail", 30), event("safari", 20), event("calculator", 1)}, now)
	assert.Zero(t, got.ProductivityScore)
	assert.Equal(t, []string{"mail", "safari", "chrome"}, got.AppsUsed)
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil, now)
	assert.Zero(t, got.FocusedTime)
	assert.Zero(t, got.ProductivityScore)
	assert.Empty(t, got.AppsUsed)
}

func TestClient_Current(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/0/buckets", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{
			"aw-watcher-afk_box": {"id": "aw-watcher-afk_box", "type": "afkstatus", "hostname": "box"},
			"aw-watcher-window_box": {"id": "aw-watcher-window_box", "type": "currentwindow", "hostname": "box"}
		}`)
	})
	mux.HandleFunc("/api/0/buckets/aw-watcher-window_box/events", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-06-01T17:00:00Z", r.URL.Query().Get("start"))
		_ = json.NewEncoder(w).Encode([]Event{event("code", 45), event("reddit", 15)})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL+"/api/0/", "", time.Second)
	c.now = func() time.Time { return now }

	got, err := c.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 45, got.FocusedTime)
	assert.Equal(t, 15, got.DistractedTime)
	assert.Equal(t, 75, got.ProductivityScore)
}

func TestClient_NoWindowBucket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"aw-watcher-window_other": {"type": "currentwindow", "hostname": "other"}}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "box", time.Second).Current(context.Background())
	assert.True(t, errors.Is(err, ErrNoWindowBucket))
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewClient(srv.URL, "", 100*time.Millisecond).Current(context.Background())
	assert.Error(t, err)
}
