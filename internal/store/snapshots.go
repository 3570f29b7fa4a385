package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/kilupskalvis/pvc/internal/models"
)

// DefaultModel is the model label recorded when a commit specifies none.
const DefaultModel = "gpt-4"

// Commit persists a new snapshot of a prompt and returns its ID.
//
// The project is registered lazily on first commit. The insert is
// idempotent: re-committing the same (project, content, created_at)
// derives the same ID and leaves the existing row untouched, and the ID
// is returned either way. Empty content is accepted here; rejecting it
// is the caller's concern.
func (s *Store) Commit(project, content, message, model string, labels []string) (string, error) {
	return s.commitAt(project, content, message, model, labels, time.Now())
}

// commitAt is Commit with an explicit timestamp, used by tests to
// control ordering and ID derivation.
func (s *Store) commitAt(project, content, message, model string, labels []string, now time.Time) (string, error) {
	if model == "" {
		model = DefaultModel
	}
	if labels == nil {
		labels = []string{}
	}

	timestamp := models.FormatTimestamp(now)
	id := models.GenerateSnapshotID(project, content, now)

	labelsJSON, err := json.Marshal(labels)
	if err != nil {
		return "", storageErr("encode labels", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", storageErr("begin commit", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT OR IGNORE INTO projects (name, created_at) VALUES (?, ?)",
		project, timestamp,
	)
	if err != nil {
		return "", storageErr("register project", err)
	}

	res, err := tx.Exec(`
		INSERT OR IGNORE INTO snapshots (id, project, content, message, model, labels, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, project, content, message, model, string(labelsJSON), timestamp,
	)
	if err != nil {
		return "", storageErr("insert snapshot", err)
	}

	// Commit-time labels double as the snapshot's initial tag events, so
	// the tag_events relation alone reconstructs the full label view.
	// Skipped when the insert was a no-op: the events already exist.
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		for _, label := range labels {
			_, err = tx.Exec(`
				INSERT INTO tag_events (project, snapshot_id, label, created_at)
				VALUES (?, ?, ?, ?)`,
				project, id, label, timestamp,
			)
			if err != nil {
				return "", storageErr("insert tag event", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", storageErr("commit transaction", err)
	}

	return id, nil
}

// Resolve looks up a snapshot by full or partial ID, scoped to one
// project. Matching is a half-open range scan over the primary-key
// index: IDs are lowercase hex, so every ID starting with the prefix
// sorts into [prefix, prefix+"g").
func (s *Store) Resolve(project, prefix string) (*models.Snapshot, error) {
	if prefix == "" {
		return nil, &ValidationError{Msg: "snapshot ID prefix cannot be empty"}
	}

	rows, err := s.db.Query(`
		SELECT id, project, content, message, model, labels, created_at
		FROM snapshots
		WHERE project = ? AND id >= ? AND id < ?
		ORDER BY id ASC`,
		project, prefix, prefix+"g",
	)
	if err != nil {
		return nil, storageErr("resolve snapshot", err)
	}
	defer rows.Close()

	var matches []*models.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, storageErr("scan snapshot", err)
		}
		matches = append(matches, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("resolve snapshot", err)
	}

	switch len(matches) {
	case 0:
		return nil, &NotFoundError{Project: project, Prefix: prefix}
	case 1:
		return matches[0], nil
	default:
		candidates := make([]string, len(matches))
		for i, m := range matches {
			candidates[i] = m.ShortID()
		}
		return nil, &AmbiguousIDError{Prefix: prefix, Candidates: candidates}
	}
}

// Latest returns the most recent snapshot for a project, or nil when the
// project has no snapshots. Equal timestamps break on ID ascending so
// the result is deterministic.
func (s *Store) Latest(project string) (*models.Snapshot, error) {
	row := s.db.QueryRow(`
		SELECT id, project, content, message, model, labels, created_at
		FROM snapshots
		WHERE project = ?
		ORDER BY created_at DESC, id ASC
		LIMIT 1`,
		project,
	)

	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get latest snapshot", err)
	}
	return snap, nil
}

// History returns all snapshots for a project newest first, reduced to
// summaries (content excluded). An unknown project yields an empty slice.
func (s *Store) History(project string) ([]*models.SnapshotSummary, error) {
	rows, err := s.db.Query(`
		SELECT id, message, model, labels, created_at
		FROM snapshots
		WHERE project = ?
		ORDER BY created_at DESC, id ASC`,
		project,
	)
	if err != nil {
		return nil, storageErr("get history", err)
	}
	defer rows.Close()

	summaries := []*models.SnapshotSummary{}
	for rows.Next() {
		var sum models.SnapshotSummary
		var labelsJSON, timestamp string

		if err := rows.Scan(&sum.ID, &sum.Message, &sum.Model, &labelsJSON, &timestamp); err != nil {
			return nil, storageErr("scan history row", err)
		}
		if err := json.Unmarshal([]byte(labelsJSON), &sum.Labels); err != nil {
			return nil, storageErr("decode labels", err)
		}
		sum.CreatedAt = parseTimestamp(timestamp)

		summaries = append(summaries, &sum)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("get history", err)
	}

	return summaries, nil
}

// ListProjects returns the sorted, distinct names of all projects with
// at least one snapshot.
func (s *Store) ListProjects() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT project FROM snapshots ORDER BY project ASC")
	if err != nil {
		return nil, storageErr("list projects", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storageErr("scan project name", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list projects", err)
	}

	return names, nil
}

// CountVersions returns the number of snapshots for a project, zero for
// unknown projects.
func (s *Store) CountVersions(project string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM snapshots WHERE project = ?", project).Scan(&n)
	if err != nil {
		return 0, storageErr("count versions", err)
	}
	return n, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*models.Snapshot, error) {
	var snap models.Snapshot
	var labelsJSON, timestamp string

	err := row.Scan(&snap.ID, &snap.Project, &snap.Content, &snap.Message,
		&snap.Model, &labelsJSON, &timestamp)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(labelsJSON), &snap.Labels); err != nil {
		return nil, err
	}
	snap.CreatedAt = parseTimestamp(timestamp)

	return &snap, nil
}
