package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_GetSetDelete(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set("key", "value"))
	got, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	// Overwrite replaces the stored value.
	require.NoError(t, store.Set("key", "other"))
	got, err = store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, "other", got)

	require.NoError(t, store.Delete("key"))
	_, err = store.Get("key")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is fine.
	require.NoError(t, store.Delete("key"))
}

func TestFileStorage_ValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStorage(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("jwt_token", "abc"))

	reopened, err := NewFileStorage(dir)
	require.NoError(t, err)
	got, err := reopened.Get("jwt_token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}
