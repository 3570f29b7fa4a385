package models

import "time"

// Snapshot represents one immutable committed version of a prompt.
// Content is the full text at that version, never a delta.
type Snapshot struct {
	ID        string    `json:"id"`
	Project   string    `json:"project"`
	Content   string    `json:"content"`
	Message   string    `json:"message"`
	Model     string    `json:"model"`
	Labels    []string  `json:"labels"`
	CreatedAt time.Time `json:"created_at"`
}

// ShortID returns a shortened snapshot ID (first 8 characters)
func (s *Snapshot) ShortID() string {
	return ShortID(s.ID)
}

// SnapshotSummary is a Snapshot without its content, as returned by
// history listings.
type SnapshotSummary struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Model     string    `json:"model"`
	Labels    []string  `json:"labels"`
	CreatedAt time.Time `json:"created_at"`
}

// ShortID returns a shortened snapshot ID (first 8 characters)
func (s *SnapshotSummary) ShortID() string {
	return ShortID(s.ID)
}

// TagEvent is one append-only label attachment. Commit-time labels are
// recorded as an initial batch of tag events, so the tag_events relation
// alone reconstructs the complete label view for a snapshot.
type TagEvent struct {
	ID         int64     `json:"id"`
	Project    string    `json:"project"`
	SnapshotID string    `json:"snapshot_id"`
	Label      string    `json:"label"`
	CreatedAt  time.Time `json:"created_at"`
}

// ShortID returns the first 8 characters of a snapshot ID.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
