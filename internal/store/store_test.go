package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kilupskalvis/pvc/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a new SQLite store in a temp directory for testing.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Initialize())
	t.Cleanup(func() { st.Close() })
	return st
}

// insertSnapshot inserts a snapshot row with an arbitrary ID, bypassing
// derivation, to set up prefix-collision scenarios.
func insertSnapshot(t *testing.T, st *Store, project, id, content string, createdAt time.Time) {
	t.Helper()
	_, err := st.db.Exec(
		"INSERT OR IGNORE INTO projects (name, created_at) VALUES (?, ?)",
		project, models.FormatTimestamp(createdAt),
	)
	require.NoError(t, err)
	_, err = st.db.Exec(`
		INSERT INTO snapshots (id, project, content, message, model, labels, created_at)
		VALUES (?, ?, ?, ?, 'gpt-4', '[]', ?)`,
		id, project, content, "msg", models.FormatTimestamp(createdAt),
	)
	require.NoError(t, err)
}

// ==================== Commit Tests ====================

func TestStore_Commit_Returns64CharHex(t *testing.T) {
	st := newTestStore(t)

	id, err := st.Commit("summarizer", "Be helpful.", "v1", "gpt-4", nil)
	require.NoError(t, err)

	assert.Len(t, id, 64)
	for _, c := range id {
		assert.Contains(t, "0123456789abcdef", string(c))
	}
}

func TestStore_Commit_DifferentTimesDifferentIDs(t *testing.T) {
	st := newTestStore(t)

	base := time.Date(2024, 3, 14, 11, 0, 0, 0, time.UTC)
	id1, err := st.commitAt("bot", "Hello", "first", "gpt-4", nil, base)
	require.NoError(t, err)
	id2, err := st.commitAt("bot", "Hello", "second", "gpt-4", nil, base.Add(time.Second))
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2, "Identical content at different times should produce different IDs")
}

func TestStore_Commit_IdempotentInsert(t *testing.T) {
	st := newTestStore(t)

	ts := time.Date(2024, 3, 14, 11, 0, 0, 0, time.UTC)
	id1, err := st.commitAt("p", "same", "msg", "gpt-4", []string{"prod"}, ts)
	require.NoError(t, err)

	// Same (project, content, timestamp) derives the same ID; the second
	// write is a no-op, not an error and not a duplicate row.
	id2, err := st.commitAt("p", "same", "msg", "gpt-4", []string{"prod"}, ts)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	n, err := st.CountVersions("p")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// The initial tag batch is not duplicated either.
	events, err := st.TagEvents(id1)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestStore_Commit_DefaultModel(t *testing.T) {
	st := newTestStore(t)

	id, err := st.Commit("p", "content", "msg", "", nil)
	require.NoError(t, err)

	snap, err := st.Resolve("p", id)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", snap.Model)
}

func TestStore_Commit_LabelsRoundTrip(t *testing.T) {
	st := newTestStore(t)

	id, err := st.Commit("p", "content", "msg", "claude-3", []string{"prod", "stable"})
	require.NoError(t, err)

	snap, err := st.Resolve("p", id)
	require.NoError(t, err)
	assert.Equal(t, "claude-3", snap.Model)
	assert.Equal(t, []string{"prod", "stable"}, snap.Labels)
}

func TestStore_Commit_EmptyContentAccepted(t *testing.T) {
	st := newTestStore(t)

	// Rejecting empty content is the CLI's concern, not the store's.
	id, err := st.Commit("p", "", "empty", "gpt-4", nil)
	require.NoError(t, err)

	snap, err := st.Resolve("p", id)
	require.NoError(t, err)
	assert.Equal(t, "", snap.Content)
}

// ==================== Resolve Tests ====================

func TestStore_Resolve_FullID(t *testing.T) {
	st := newTestStore(t)

	id, err := st.Commit("p", "content", "msg", "gpt-4", nil)
	require.NoError(t, err)

	snap, err := st.Resolve("p", id)
	require.NoError(t, err)
	assert.Equal(t, id, snap.ID)
	assert.Equal(t, "content", snap.Content)
	assert.Equal(t, "msg", snap.Message)
	assert.Equal(t, "p", snap.Project)
}

func TestStore_Resolve_UniquePrefix(t *testing.T) {
	st := newTestStore(t)

	insertSnapshot(t, st, "p", "aa11111111111111111111111111111111111111111111111111111111111111", "v1", time.Now())
	insertSnapshot(t, st, "p", "bb22222222222222222222222222222222222222222222222222222222222222", "v2", time.Now())

	snap, err := st.Resolve("p", "aa11")
	require.NoError(t, err)
	assert.Equal(t, "v1", snap.Content)

	// A one-character prefix works when it is unique.
	snap, err = st.Resolve("p", "b")
	require.NoError(t, err)
	assert.Equal(t, "v2", snap.Content)
}

func TestStore_Resolve_NotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Commit("p", "content", "msg", "gpt-4", nil)
	require.NoError(t, err)

	_, err = st.Resolve("p", "0000dead")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "p", notFound.Project)
	assert.Equal(t, "0000dead", notFound.Prefix)
}

func TestStore_Resolve_UnknownProject(t *testing.T) {
	st := newTestStore(t)

	id, err := st.Commit("p", "content", "msg", "gpt-4", nil)
	require.NoError(t, err)

	// Resolution is scoped to one project; the same ID under another
	// owner is not found, never ambiguous.
	_, err = st.Resolve("other", id)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestStore_Resolve_Ambiguous(t *testing.T) {
	st := newTestStore(t)

	insertSnapshot(t, st, "p", "abc1111111111111111111111111111111111111111111111111111111111111", "v1", time.Now())
	insertSnapshot(t, st, "p", "abc2222222222222222222222222222222222222222222222222222222222222", "v2", time.Now())

	_, err := st.Resolve("p", "abc")
	var ambiguous *AmbiguousIDError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "abc", ambiguous.Prefix)
	assert.Equal(t, []string{"abc11111", "abc22222"}, ambiguous.Candidates)

	// A longer prefix disambiguates.
	snap, err := st.Resolve("p", "abc2")
	require.NoError(t, err)
	assert.Equal(t, "v2", snap.Content)
}

func TestStore_Resolve_EmptyPrefix(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Resolve("p", "")
	var invalid *ValidationError
	assert.ErrorAs(t, err, &invalid)
}

func TestStore_Resolve_AllFsPrefix(t *testing.T) {
	st := newTestStore(t)

	insertSnapshot(t, st, "p", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "max", time.Now())

	snap, err := st.Resolve("p", "ffff")
	require.NoError(t, err)
	assert.Equal(t, "max", snap.Content)
}

// ==================== Latest / History Tests ====================

func TestStore_Latest_ReturnsMostRecent(t *testing.T) {
	st := newTestStore(t)

	base := time.Date(2024, 3, 14, 11, 0, 0, 0, time.UTC)
	_, err := st.commitAt("p", "v1", "first commit", "gpt-4", nil, base)
	require.NoError(t, err)
	_, err = st.commitAt("p", "v2", "second commit", "gpt-4", nil, base.Add(time.Minute))
	require.NoError(t, err)

	latest, err := st.Latest("p")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "second commit", latest.Message)
	assert.Equal(t, "v2", latest.Content)

	n, err := st.CountVersions("p")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStore_Latest_NilForUnknownProject(t *testing.T) {
	st := newTestStore(t)

	latest, err := st.Latest("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestStore_Latest_TieBreaksOnID(t *testing.T) {
	st := newTestStore(t)

	ts := time.Date(2024, 3, 14, 11, 0, 0, 0, time.UTC)
	insertSnapshot(t, st, "p", "bbbb111111111111111111111111111111111111111111111111111111111111", "vb", ts)
	insertSnapshot(t, st, "p", "aaaa111111111111111111111111111111111111111111111111111111111111", "va", ts)

	// Identical timestamps resolve deterministically: ID ascending.
	latest, err := st.Latest("p")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "va", latest.Content)
}

func TestStore_History_NewestFirst(t *testing.T) {
	st := newTestStore(t)

	base := time.Date(2024, 3, 14, 11, 0, 0, 0, time.UTC)
	messages := []string{"first", "second", "third"}
	for i, msg := range messages {
		_, err := st.commitAt("p", msg, msg, "gpt-4", nil, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	history, err := st.History("p")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "third", history[0].Message)
	assert.Equal(t, "second", history[1].Message)
	assert.Equal(t, "first", history[2].Message)
}

func TestStore_History_ExcludesContentIncludesMetadata(t *testing.T) {
	st := newTestStore(t)

	id, err := st.Commit("p", "content", "msg", "claude-3", []string{"prod"})
	require.NoError(t, err)

	history, err := st.History("p")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, id, history[0].ID)
	assert.Equal(t, "msg", history[0].Message)
	assert.Equal(t, "claude-3", history[0].Model)
	assert.Equal(t, []string{"prod"}, history[0].Labels)
	assert.False(t, history[0].CreatedAt.IsZero())
}

func TestStore_History_EmptyForUnknownProject(t *testing.T) {
	st := newTestStore(t)

	history, err := st.History("does-not-exist")
	require.NoError(t, err)
	assert.Empty(t, history)
}

// ==================== List / Count Tests ====================

func TestStore_ListProjects_SortedDistinct(t *testing.T) {
	st := newTestStore(t)

	names, err := st.ListProjects()
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = st.Commit("zeta", "z", "m", "gpt-4", nil)
	require.NoError(t, err)
	_, err = st.Commit("alpha", "a1", "m", "gpt-4", nil)
	require.NoError(t, err)
	_, err = st.Commit("alpha", "a2", "m", "gpt-4", nil)
	require.NoError(t, err)

	names, err = st.ListProjects()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestStore_CountVersions_ZeroForUnknown(t *testing.T) {
	st := newTestStore(t)

	n, err := st.CountVersions("nope")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

// ==================== Tag Tests ====================

func TestStore_Tag_AppendsEventAndReturnsSnapshot(t *testing.T) {
	st := newTestStore(t)

	id, err := st.Commit("p", "content", "msg", "gpt-4", nil)
	require.NoError(t, err)

	snap, err := st.Tag("p", id[:8], "production")
	require.NoError(t, err)
	assert.Equal(t, id, snap.ID)

	events, err := st.TagEvents(id)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "production", events[0].Label)
	assert.Equal(t, id, events[0].SnapshotID)
	assert.Equal(t, "p", events[0].Project)
}

func TestStore_Tag_TrimsWhitespace(t *testing.T) {
	st := newTestStore(t)

	id, err := st.Commit("p", "content", "msg", "gpt-4", nil)
	require.NoError(t, err)

	_, err = st.Tag("p", id, "  stable  ")
	require.NoError(t, err)

	labels, err := st.Labels(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"stable"}, labels)
}

func TestStore_Tag_EmptyLabelRejected(t *testing.T) {
	st := newTestStore(t)

	id, err := st.Commit("p", "content", "msg", "gpt-4", nil)
	require.NoError(t, err)

	_, err = st.Tag("p", id, "   ")
	var invalid *ValidationError
	assert.ErrorAs(t, err, &invalid)

	events, err := st.TagEvents(id)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestStore_Tag_UnresolvedPrefix(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Tag("p", "deadbeef", "prod")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestStore_Tag_DuplicateLabelsAppend(t *testing.T) {
	st := newTestStore(t)

	id, err := st.Commit("p", "content", "msg", "gpt-4", nil)
	require.NoError(t, err)

	_, err = st.Tag("p", id, "prod")
	require.NoError(t, err)
	_, err = st.Tag("p", id, "prod")
	require.NoError(t, err)

	// The event trail is append-only and keeps both.
	events, err := st.TagEvents(id)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	// The label view deduplicates.
	labels, err := st.Labels(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"prod"}, labels)
}

func TestStore_Labels_CommitLabelsPlusTagEvents(t *testing.T) {
	st := newTestStore(t)

	id, err := st.Commit("p", "content", "msg", "gpt-4", []string{"draft"})
	require.NoError(t, err)

	_, err = st.Tag("p", id, "prod")
	require.NoError(t, err)

	// Commit-time labels are the initial tag batch, so the complete view
	// comes from tag events alone, in attachment order.
	labels, err := st.Labels(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"draft", "prod"}, labels)
}
