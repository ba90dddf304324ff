package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

var base = time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestWeather_RoundTripAndOrder(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := tracker.WeatherSample{ID: "w1", Timestamp: base, Temp: 21.5, Conditions: "Clouds", Humidity: 70, WindSpeed: 3.2, Location: "Oslo"}
	// A clock set back between writes must not reorder the stream.
	skewed := tracker.WeatherSample{ID: "w2", Timestamp: base.Add(-time.Minute), Temp: 18, Conditions: "Clear"}

	for _, s := range []tracker.WeatherSample{first, skewed} {
		added, err := db.AddWeather(ctx, s)
		require.NoError(t, err)
		assert.True(t, added)
	}

	got, err := db.WeatherHistory(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0])
	assert.Equal(t, skewed, got[1])

	latest, err := db.LatestWeather(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "w2", latest.ID)
}

func TestTimestamps_ReadBackInLocalTime(t *testing.T) {
	orig := time.Local
	time.Local = time.FixedZone("EST", -5*60*60)
	t.Cleanup(func() { time.Local = orig })

	db := openTestDB(t)
	ctx := context.Background()

	nineAM := time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)
	_, err := db.AddProductivity(ctx, tracker.ProductivitySample{ID: "p", Timestamp: nineAM, FocusedTime: 90, DistractedTime: 10, ProductivityScore: 90})
	require.NoError(t, err)
	_, err = db.AddPomodoro(ctx, tracker.PomodoroSession{ID: "s", Timestamp: nineAM.UTC(), Duration: 1500, Completed: true})
	require.NoError(t, err)

	prod, err := db.ProductivityHistory(ctx)
	require.NoError(t, err)
	require.Len(t, prod, 1)
	assert.Equal(t, 9, prod[0].Timestamp.Hour())
	assert.True(t, nineAM.Equal(prod[0].Timestamp))

	sessions, err := db.PomodoroHistory(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 9, sessions[0].Timestamp.Hour())
}

func TestWeather_DuplicateIgnored(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := tracker.WeatherSample{ID: "dup", Timestamp: base, Temp: 10, Conditions: "Rain"}

	added, err := db.AddWeather(ctx, s)
	require.NoError(t, err)
	assert.True(t, added)

	s.Temp = 99
	added, err = db.AddWeather(ctx, s)
	require.NoError(t, err)
	assert.False(t, added)

	got, err := db.WeatherHistory(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 10.0, got[0].Temp)
}

func TestRetention_KeepsNewest(t *testing.T) {
	db := openTestDB(t)
	db.SetLimits(Limits{Productivity: 3})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := db.AddProductivity(ctx, tracker.ProductivitySample{
			ID:                fmt.Sprintf("p%d", i),
			Timestamp:         base.Add(time.Duration(i) * time.Hour),
			FocusedTime:       40,
			DistractedTime:    10,
			ProductivityScore: 80,
		})
		require.NoError(t, err)
	}

	got, err := db.ProductivityHistory(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, "p4", got[2].ID)

	// Retention follows append position, not timestamp.
	_, err = db.AddProductivity(ctx, tracker.ProductivitySample{ID: "late", Timestamp: base.Add(-24 * time.Hour), ProductivityScore: 10})
	require.NoError(t, err)
	got, err = db.ProductivityHistory(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "p3", got[0].ID)
	assert.Equal(t, "late", got[2].ID)

	assert.Equal(t, 30, db.Limits().Weather)
	assert.Equal(t, 3, db.Limits().Productivity)
}

func TestProductivity_AppsUsed(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.AddProductivity(ctx, tracker.ProductivitySample{
		ID: "a", Timestamp: base, FocusedTime: 30, DistractedTime: 30, ProductivityScore: 50,
		AppsUsed: []string{"code", "slack"},
	})
	require.NoError(t, err)

	latest, err := db.LatestProductivity(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, []string{"code", "slack"}, latest.AppsUsed)
}

func TestProductivity_CorruptAppsUsed(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.Conn().ExecContext(ctx,
		`INSERT INTO productivity_samples (id, ts_ms, focused_time, distracted_time, productivity_score, apps_used)
		VALUES ('bad', 0, 1, 1, 50, 'not json')`)
	require.NoError(t, err)

	_, err = db.ProductivityHistory(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apps_used")

	_, err = db.LatestProductivity(ctx)
	assert.Error(t, err)
}

func TestLatest_Empty(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	w, err := db.LatestWeather(ctx)
	require.NoError(t, err)
	assert.Nil(t, w)

	p, err := db.LatestProductivity(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPomodoro_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	s := tracker.PomodoroSession{ID: "s1", Timestamp: base, Duration: 1500, Completed: true, Cycle: 2}
	_, err := db.AddPomodoro(ctx, s)
	require.NoError(t, err)

	got, err := db.PomodoroHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []tracker.PomodoroSession{s}, got)
}

func TestImport(t *testing.T) {
	db := openTestDB(t)
	db.SetLimits(Limits{Weather: 2})
	ctx := context.Background()

	_, err := db.AddPomodoro(ctx, tracker.PomodoroSession{ID: "existing", Timestamp: base, Duration: 1500})
	require.NoError(t, err)

	batch := tracker.Batch{
		Weather: []tracker.WeatherSample{
			{ID: "w1", Timestamp: base, Temp: 5, Conditions: "Snow"},
			{ID: "w2", Timestamp: base.Add(time.Hour), Temp: 6, Conditions: "Snow"},
			{ID: "w3", Timestamp: base.Add(2 * time.Hour), Temp: 7, Conditions: "Clear"},
		},
		Pomodoro: []tracker.PomodoroSession{
			{ID: "existing", Timestamp: base, Duration: 1500},
			{ID: "new", Timestamp: base.Add(time.Hour), Duration: 1500, Completed: true},
		},
		Skipped: 4,
	}

	stats, err := db.Import(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Inserted: 4, Duplicates: 1, Skipped: 4}, stats)

	counts, err := db.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Weather: 2, Productivity: 0, Pomodoro: 2}, counts)

	weather, err := db.WeatherHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, "w2", weather[0].ID)
	assert.Equal(t, "w3", weather[1].ID)
}

func TestClear(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.AddWeather(ctx, tracker.WeatherSample{ID: "w", Timestamp: base, Temp: 1, Conditions: "Snow"})
	require.NoError(t, err)
	require.NoError(t, db.Clear(ctx, tracker.StreamWeather))

	counts, err := db.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts.Weather)

	assert.Error(t, db.Clear(ctx, tracker.Stream("nope")))
}

func TestAdd_GeneratesMissingID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.AddWeather(ctx, tracker.WeatherSample{Timestamp: base, Temp: 12, Conditions: "Mist"})
	require.NoError(t, err)

	got, err := db.WeatherHistory(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
}

func TestOpen_File(t *testing.T) {
	path := t.TempDir() + "/nested/weatherfocus.db"
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	// Reopening runs migrations against an existing schema.
	require.NoError(t, db.Migrate())
}
