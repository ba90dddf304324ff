package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means a fresh database.
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates the three history tables. Timestamps are unix
// milliseconds so ordering and retention trims are plain integer compares.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS weather_samples (
			id          TEXT PRIMARY KEY,
			ts_ms       INTEGER NOT NULL,
			temp        REAL NOT NULL,
			feels_like  REAL NOT NULL DEFAULT 0,
			conditions  TEXT NOT NULL,
			humidity    INTEGER NOT NULL DEFAULT 0,
			wind_speed  REAL NOT NULL DEFAULT 0,
			location    TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS productivity_samples (
			id                 TEXT PRIMARY KEY,
			ts_ms              INTEGER NOT NULL,
			focused_time       INTEGER NOT NULL,
			distracted_time    INTEGER NOT NULL,
			productivity_score INTEGER NOT NULL,
			apps_used          TEXT NOT NULL DEFAULT '[]'
		)`,

		`CREATE TABLE IF NOT EXISTS pomodoro_sessions (
			id         TEXT PRIMARY KEY,
			ts_ms      INTEGER NOT NULL,
			duration   INTEGER NOT NULL,
			completed  BOOLEAN NOT NULL,
			cycle      INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_weather_ts ON weather_samples(ts_ms)`,
		`CREATE INDEX IF NOT EXISTS idx_productivity_ts ON productivity_samples(ts_ms)`,
		`CREATE INDEX IF NOT EXISTS idx_pomodoro_ts ON pomodoro_sessions(ts_ms)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
