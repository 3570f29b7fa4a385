package store

import (
	"strings"
	"time"

	"github.com/kilupskalvis/pvc/internal/models"
)

// Tag resolves a snapshot by full or partial ID and appends a tag event
// for it. The label must be non-empty after trimming surrounding
// whitespace. Returns the resolved snapshot.
func (s *Store) Tag(project, prefix, label string) (*models.Snapshot, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, &ValidationError{Msg: "tag label cannot be empty"}
	}

	snap, err := s.Resolve(project, prefix)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`
		INSERT INTO tag_events (project, snapshot_id, label, created_at)
		VALUES (?, ?, ?, ?)`,
		project, snap.ID, label, models.FormatTimestamp(time.Now()),
	)
	if err != nil {
		return nil, storageErr("insert tag event", err)
	}

	return snap, nil
}

// TagEvents returns every tag event recorded for a snapshot, oldest
// first. Commit-time labels appear here too, as the initial batch.
func (s *Store) TagEvents(snapshotID string) ([]*models.TagEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, project, snapshot_id, label, created_at
		FROM tag_events
		WHERE snapshot_id = ?
		ORDER BY id ASC`,
		snapshotID,
	)
	if err != nil {
		return nil, storageErr("get tag events", err)
	}
	defer rows.Close()

	events := []*models.TagEvent{}
	for rows.Next() {
		var ev models.TagEvent
		var timestamp string

		if err := rows.Scan(&ev.ID, &ev.Project, &ev.SnapshotID, &ev.Label, &timestamp); err != nil {
			return nil, storageErr("scan tag event", err)
		}
		ev.CreatedAt = parseTimestamp(timestamp)

		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("get tag events", err)
	}

	return events, nil
}

// Labels returns the complete, deduplicated label view for a snapshot,
// reconstructed from tag events in attachment order.
func (s *Store) Labels(snapshotID string) ([]string, error) {
	events, err := s.TagEvents(snapshotID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	labels := []string{}
	for _, ev := range events {
		if seen[ev.Label] {
			continue
		}
		seen[ev.Label] = true
		labels = append(labels, ev.Label)
	}

	return labels, nil
}
