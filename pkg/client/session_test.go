package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSessionStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileSessionStore(path)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	sess := &Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		UserID:       "u-1",
		Email:        "admin@example.com",
	}
	require.NoError(t, store.Save(sess))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, sess, loaded)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	// clearing twice is fine
	require.NoError(t, store.Clear())
}

func TestFileSessionStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileSessionStore(path).Load()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}

func TestFileSessionStoreEmptyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":""}`), 0o600))

	_, err := NewFileSessionStore(path).Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemorySessionStore(t *testing.T) {
	store := &MemorySessionStore{}

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	sess := &Session{AccessToken: "tok"}
	require.NoError(t, store.Save(sess))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", loaded.AccessToken)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}
