package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLite {
	t.Helper()

	store, err := NewSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLite_GetMissingKey(t *testing.T) {
	store := newTestSQLiteStore(t)

	value, ok, err := store.Get("summary")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", value)
}

func TestSQLite_SetGetRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	require.NoError(t, store.Set("summary", `[{"id":1,"text":"A"}]`))

	value, ok, err := store.Get("summary")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1,"text":"A"}]`, value)
}

func TestSQLite_SetReplacesPriorValue(t *testing.T) {
	store := newTestSQLiteStore(t)

	require.NoError(t, store.Set("summary", "old"))
	require.NoError(t, store.Set("summary", "new"))

	value, ok, err := store.Get("summary")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", value)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("summary", "persisted"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	value, ok, err := reopened.Get("summary")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", value)
}

func TestNewSQLite_EmptyPath(t *testing.T) {
	_, err := NewSQLite("")
	assert.Error(t, err)
}
