package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// TimestampLayout is the fixed-width UTC encoding used both for the ID
// hash payload and for the created_at column. Unlike RFC3339Nano it never
// trims trailing zeros, so lexicographic order equals chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTimestamp encodes a timestamp in the canonical store layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// GenerateSnapshotID derives the content-addressable snapshot ID.
// The hash covers (project, content, timestamp) separated by NUL bytes,
// so two commits of identical content at different times produce
// different IDs while the ID stays reproducible from the three inputs.
func GenerateSnapshotID(project, content string, createdAt time.Time) string {
	payload := project + "\x00" + content + "\x00" + FormatTimestamp(createdAt)
	hash := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(hash[:])
}
