package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicectl/pkg/models"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.AccessToken())
	assert.Nil(t, s.User())
}

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.SetTokens("access-1", "refresh-1"))
	require.NoError(t, s.SetUser(models.User{ID: "u1", Email: "ada@mail.com", Name: "Ada"}))

	// A fresh load sees the rehydrated state.
	again, err := Load(path)
	require.NoError(t, err)
	assert.True(t, again.LoggedIn())
	assert.Equal(t, "access-1", again.AccessToken())
	assert.Equal(t, "refresh-1", again.RefreshToken())
	require.NotNil(t, again.User())
	assert.Equal(t, "Ada", again.User().Name)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.SetTokens("access", "refresh"))
	require.NoError(t, s.Clear())

	assert.False(t, s.LoggedIn())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Clearing an already-clear session is fine.
	require.NoError(t, s.Clear())
}

func TestLoadCorruptFileActsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())
}
