// Package store provides SQLite-based persistence for PVC.
// It manages projects, snapshots, and append-only tag events.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store represents the SQLite database store
type Store struct {
	db *sql.DB
}

// New creates a new store connection. The busy timeout bounds waits on
// the database lock when multiple process instances share one file.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the database schema
func (s *Store) Initialize() error {
	schema := `
	-- Projects (lazy namespace registry)
	CREATE TABLE IF NOT EXISTS projects (
		name TEXT PRIMARY KEY,
		created_at TEXT NOT NULL
	);

	-- Snapshots (full text per version, never deltas)
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		project TEXT NOT NULL,
		content TEXT NOT NULL,
		message TEXT NOT NULL,
		model TEXT NOT NULL DEFAULT 'gpt-4',
		labels TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		FOREIGN KEY (project) REFERENCES projects(name)
	);

	-- Tag events (append-only label attachments)
	CREATE TABLE IF NOT EXISTS tag_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project TEXT NOT NULL,
		snapshot_id TEXT NOT NULL,
		label TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (snapshot_id) REFERENCES snapshots(id)
	);

	-- Indexes
	CREATE INDEX IF NOT EXISTS idx_snapshots_project ON snapshots(project, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_tag_events_snapshot ON tag_events(snapshot_id);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// DB returns the underlying database connection for advanced queries
func (s *Store) DB() *sql.DB {
	return s.db
}

// parseTimestamp parses a timestamp string from SQLite in various formats
func parseTimestamp(s string) time.Time {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
