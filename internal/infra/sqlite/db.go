// Package sqlite persists the player aggregate and court-case history.
// The aggregate is stored as a single named JSON blob (last-writer-wins);
// cases and the static leaderboard get their own tables.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

// DB wraps the sqlite handle.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies migrations.
// Use ":memory:" for tests.
func Open(path string) (*DB, error) {
	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One writer at a time keeps the single-session model honest.
	handle.SetMaxOpenConns(1)

	db := &DB{db: handle}
	if err := db.migrate(); err != nil {
		handle.Close()
		return nil, err
	}
	return db, nil
}

// Close releases the underlying handle.
func (db *DB) Close() error {
	return db.db.Close()
}

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the schema migration statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		// Player aggregate as an opaque blob, one named record
		`CREATE TABLE IF NOT EXISTS player_state (
			name       TEXT PRIMARY KEY,
			state_json TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,

		// Court case history
		`CREATE TABLE IF NOT EXISTS court_cases (
			id               TEXT PRIMARY KEY,
			opponent_name    TEXT NOT NULL,
			stolen_amount    REAL NOT NULL,
			filed_at         TEXT NOT NULL,
			status           TEXT NOT NULL DEFAULT 'pending',
			recovered_amount REAL NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cases_status ON court_cases(status)`,

		// Static leaderboard seed
		`CREATE TABLE IF NOT EXISTS leaderboard (
			faction TEXT NOT NULL,
			name    TEXT NOT NULL,
			points  INTEGER NOT NULL DEFAULT 0,
			income  REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (faction, name)
		)`,
	}
}

func (db *DB) migrate() error {
	for _, stmt := range Migrations() {
		if _, err := db.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
