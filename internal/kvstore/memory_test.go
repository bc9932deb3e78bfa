package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetRoundTrip(t *testing.T) {
	store := NewMemory()

	_, ok, err := store.Get("summary")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("summary", "value"))

	value, ok, err := store.Get("summary")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)
}

func TestMemory_ClosedStoreRejectsOperations(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.Close())

	_, _, err := store.Get("summary")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, store.Set("summary", "x"), ErrClosed)
}
