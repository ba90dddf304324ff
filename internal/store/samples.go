package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var tables = map[tracker.Stream]string{
	tracker.StreamWeather:      "weather_samples",
	tracker.StreamProductivity: "productivity_samples",
	tracker.StreamPomodoro:     "pomodoro_sessions",
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// fromMillis returns local time; time-of-day bands are wall-clock hours.
func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// AddWeather appends a weather sample and trims the stream to its limit.
// It reports false when a sample with the same ID already exists.
func (db *DB) AddWeather(ctx context.Context, s tracker.WeatherSample) (bool, error) {
	return db.addAndTrim(ctx, tracker.StreamWeather, func(ex execer) (bool, error) {
		return insertWeather(ctx, ex, s)
	})
}

// AddProductivity appends a productivity sample and trims the stream.
func (db *DB) AddProductivity(ctx context.Context, s tracker.ProductivitySample) (bool, error) {
	return db.addAndTrim(ctx, tracker.StreamProductivity, func(ex execer) (bool, error) {
		return insertProductivity(ctx, ex, s)
	})
}

// AddPomodoro appends a Pomodoro session and trims the stream.
func (db *DB) AddPomodoro(ctx context.Context, s tracker.PomodoroSession) (bool, error) {
	return db.addAndTrim(ctx, tracker.StreamPomodoro, func(ex execer) (bool, error) {
		return insertPomodoro(ctx, ex, s)
	})
}

func (db *DB) addAndTrim(ctx context.Context, stream tracker.Stream, insert func(execer) (bool, error)) (bool, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	added, err := insert(tx)
	if err != nil {
		return false, err
	}
	if err := trim(ctx, tx, stream, db.limits.For(stream)); err != nil {
		return false, err
	}
	return added, tx.Commit()
}

// Import writes a parsed batch in one transaction and trims every stream
// it touched.
func (db *DB) Import(ctx context.Context, batch tracker.Batch) (ImportStats, error) {
	stats := ImportStats{Skipped: batch.Skipped}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return stats, err
	}
	defer tx.Rollback()

	count := func(added bool) {
		if added {
			stats.Inserted++
		} else {
			stats.Duplicates++
		}
	}

	for _, s := range batch.Weather {
		added, err := insertWeather(ctx, tx, s)
		if err != nil {
			return stats, err
		}
		count(added)
	}
	for _, s := range batch.Productivity {
		added, err := insertProductivity(ctx, tx, s)
		if err != nil {
			return stats, err
		}
		count(added)
	}
	for _, s := range batch.Pomodoro {
		added, err := insertPomodoro(ctx, tx, s)
		if err != nil {
			return stats, err
		}
		count(added)
	}

	touched := map[tracker.Stream]bool{
		tracker.StreamWeather:      len(batch.Weather) > 0,
		tracker.StreamProductivity: len(batch.Productivity) > 0,
		tracker.StreamPomodoro:     len(batch.Pomodoro) > 0,
	}
	for _, stream := range tracker.Streams {
		if !touched[stream] {
			continue
		}
		if err := trim(ctx, tx, stream, db.limits.For(stream)); err != nil {
			return stats, err
		}
	}

	return stats, tx.Commit()
}

func insertWeather(ctx context.Context, ex execer, s tracker.WeatherSample) (bool, error) {
	if s.ID == "" {
		s.ID = tracker.NewID()
	}
	res, err := ex.ExecContext(ctx,
		`INSERT OR IGNORE INTO weather_samples
		(id, ts_ms, temp, feels_like, conditions, humidity, wind_speed, location)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, toMillis(s.Timestamp), s.Temp, s.FeelsLike, s.Conditions, s.Humidity, s.WindSpeed, s.Location,
	)
	if err != nil {
		return false, fmt.Errorf("inserting weather sample: %w", err)
	}
	return affected(res)
}

func insertProductivity(ctx context.Context, ex execer, s tracker.ProductivitySample) (bool, error) {
	if s.ID == "" {
		s.ID = tracker.NewID()
	}
	apps := s.AppsUsed
	if apps == nil {
		apps = []string{}
	}
	appsJSON, err := json.Marshal(apps)
	if err != nil {
		return false, fmt.Errorf("encoding apps: %w", err)
	}
	res, err := ex.ExecContext(ctx,
		`INSERT OR IGNORE INTO productivity_samples
		(id, ts_ms, focused_time, distracted_time, productivity_score, apps_used)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, toMillis(s.Timestamp), s.FocusedTime, s.DistractedTime, s.ProductivityScore, string(appsJSON),
	)
	if err != nil {
		return false, fmt.Errorf("inserting productivity sample: %w", err)
	}
	return affected(res)
}

func insertPomodoro(ctx context.Context, ex execer, s tracker.PomodoroSession) (bool, error) {
	if s.ID == "" {
		s.ID = tracker.NewID()
	}
	res, err := ex.ExecContext(ctx,
		`INSERT OR IGNORE INTO pomodoro_sessions
		(id, ts_ms, duration, completed, cycle)
		VALUES (?, ?, ?, ?, ?)`,
		s.ID, toMillis(s.Timestamp), s.Duration, s.Completed, s.Cycle,
	)
	if err != nil {
		return false, fmt.Errorf("inserting pomodoro session: %w", err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// trim keeps the last limit rows appended to a stream, whatever their
// timestamps. trim never deletes the newest row, so rowids keep growing.
func trim(ctx context.Context, ex execer, stream tracker.Stream, limit int) error {
	if limit <= 0 {
		return nil
	}
	table := tables[stream]
	_, err := ex.ExecContext(ctx, fmt.Sprintf(
		`DELETE FROM %[1]s WHERE rowid NOT IN (
			SELECT rowid FROM %[1]s ORDER BY rowid DESC LIMIT ?
		)`, table), limit)
	if err != nil {
		return fmt.Errorf("trimming %s: %w", table, err)
	}
	return nil
}

// WeatherHistory returns retained weather samples in append order.
func (db *DB) WeatherHistory(ctx context.Context) ([]tracker.WeatherSample, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, ts_ms, temp, feels_like, conditions, humidity, wind_speed, location
		FROM weather_samples ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying weather history: %w", err)
	}
	defer rows.Close()

	var out []tracker.WeatherSample
	for rows.Next() {
		s, err := scanWeather(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ProductivityHistory returns retained productivity samples in append order.
func (db *DB) ProductivityHistory(ctx context.Context) ([]tracker.ProductivitySample, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, ts_ms, focused_time, distracted_time, productivity_score, apps_used
		FROM productivity_samples ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying productivity history: %w", err)
	}
	defer rows.Close()

	var out []tracker.ProductivitySample
	for rows.Next() {
		s, err := scanProductivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// PomodoroHistory returns retained Pomodoro sessions in append order.
func (db *DB) PomodoroHistory(ctx context.Context) ([]tracker.PomodoroSession, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, ts_ms, duration, completed, cycle
		FROM pomodoro_sessions ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying pomodoro history: %w", err)
	}
	defer rows.Close()

	var out []tracker.PomodoroSession
	for rows.Next() {
		var s tracker.PomodoroSession
		var ts int64
		if err := rows.Scan(&s.ID, &ts, &s.Duration, &s.Completed, &s.Cycle); err != nil {
			return nil, err
		}
		s.Timestamp = fromMillis(ts)
		out = append(out, s)
	}
	return out, rows.Err()
}

// LatestWeather returns the last appended weather sample, or nil if none exist.
func (db *DB) LatestWeather(ctx context.Context) (*tracker.WeatherSample, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, ts_ms, temp, feels_like, conditions, humidity, wind_speed, location
		FROM weather_samples ORDER BY rowid DESC LIMIT 1`)
	s, err := scanWeather(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// LatestProductivity returns the last appended productivity sample, or nil.
func (db *DB) LatestProductivity(ctx context.Context) (*tracker.ProductivitySample, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, ts_ms, focused_time, distracted_time, productivity_score, apps_used
		FROM productivity_samples ORDER BY rowid DESC LIMIT 1`)
	s, err := scanProductivity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Counts returns how many records each stream holds.
func (db *DB) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	dst := map[tracker.Stream]*int{
		tracker.StreamWeather:      &c.Weather,
		tracker.StreamProductivity: &c.Productivity,
		tracker.StreamPomodoro:     &c.Pomodoro,
	}
	for _, stream := range tracker.Streams {
		row := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+tables[stream])
		if err := row.Scan(dst[stream]); err != nil {
			return c, fmt.Errorf("counting %s: %w", tables[stream], err)
		}
	}
	return c, nil
}

// Clear deletes every record of a stream.
func (db *DB) Clear(ctx context.Context, stream tracker.Stream) error {
	table, ok := tables[stream]
	if !ok {
		return fmt.Errorf("unknown stream %q", stream)
	}
	if _, err := db.conn.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWeather(row scanner) (tracker.WeatherSample, error) {
	var s tracker.WeatherSample
	var ts int64
	err := row.Scan(&s.ID, &ts, &s.Temp, &s.FeelsLike, &s.Conditions, &s.Humidity, &s.WindSpeed, &s.Location)
	if err != nil {
		return s, err
	}
	s.Timestamp = fromMillis(ts)
	return s, nil
}

func scanProductivity(row scanner) (tracker.ProductivitySample, error) {
	var s tracker.ProductivitySample
	var ts int64
	var apps string
	err := row.Scan(&s.ID, &ts, &s.FocusedTime, &s.DistractedTime, &s.ProductivityScore, &apps)
	if err != nil {
		return s, err
	}
	s.Timestamp = fromMillis(ts)
	if apps != "" {
		if err := json.Unmarshal([]byte(apps), &s.AppsUsed); err != nil {
			return s, fmt.Errorf("decoding apps_used of %s: %w", s.ID, err)
		}
	}
	if len(s.AppsUsed) == 0 {
		s.AppsUsed = nil
	}
	return s, nil
}
