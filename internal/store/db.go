// Package store persists weather, productivity, and Pomodoro history in a
// local SQLite database with per-stream retention limits.
package store

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection to the weatherfocus SQLite database.
type DB struct {
	conn   *sql.DB
	limits Limits
}

// Open opens or creates the SQLite database at the given path.
// It creates the parent directory if it does not exist.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// WAL lets the watch daemon write while CLI commands read.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn, limits: DefaultLimits}
	if err := db.Migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

// OpenInMemory opens an in-memory SQLite database, useful for testing.
func OpenInMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every pooled connection would otherwise get its own empty database.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, limits: DefaultLimits}
	if err := db.Migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

// SetLimits replaces the retention limits. Non-positive values keep the
// current limit for that stream. Limits apply on the next write.
func (db *DB) SetLimits(l Limits) {
	if l.Weather > 0 {
		db.limits.Weather = l.Weather
	}
	if l.Productivity > 0 {
		db.limits.Productivity = l.Productivity
	}
	if l.Pomodoro > 0 {
		db.limits.Pomodoro = l.Pomodoro
	}
}

// Limits returns the active retention limits.
func (db *DB) Limits() Limits {
	return db.limits
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB for advanced queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}
