package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/idklol/launcher/internal/state"
)

func testToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	require.NoError(t, err)
	return token
}

func newTestEnv(t *testing.T, settingsBody string) *Env {
	t.Helper()
	keyring.MockInit()
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "settings.yaml")
	if settingsBody != "" {
		require.NoError(t, os.WriteFile(settingsPath, []byte(settingsBody), 0o644))
	}
	env, err := NewEnv(Options{
		SettingsPath: settingsPath,
		PrefsPath:    filepath.Join(dir, "prefs.toml"),
		ForwardToken: true,
	})
	require.NoError(t, err)
	t.Cleanup(env.Close)
	return env
}

func TestNewEnv_LogFileFollowsSettings(t *testing.T) {
	env := newTestEnv(t, "logFileName: \"launcher-{date}.log\"\n")

	want := filepath.Join(env.Settings.Dir(), "logs", "launcher-"+time.Now().UTC().Format("2006-01-02")+".log")
	assert.Equal(t, want, env.LogPath)

	env.Logger.Info("hello")
	require.NoError(t, env.Logger.Sync())
	data, err := os.ReadFile(env.LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestNewEnv_DefaultsAndPrefs(t *testing.T) {
	env := newTestEnv(t, "")
	assert.Equal(t, "Ember", env.Prefs.Theme)
	assert.Equal(t, "http://localhost:8080", env.Settings.Load().KeycloakURL)
	assert.NotNil(t, env.Identity)
	assert.NotNil(t, env.Launcher)
}

func TestRestoreSession(t *testing.T) {
	env := newTestEnv(t, "")

	store := &state.Store{}
	env.RestoreSession(store)
	assert.False(t, store.Snapshot().LoggedIn, "no stored token")

	token := testToken(t, jwt.MapClaims{
		"preferred_username": "ember",
		"exp":                time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, env.Sessions.Save(token))
	env.RestoreSession(store)
	snap := store.Snapshot()
	assert.True(t, snap.LoggedIn)
	assert.Equal(t, "ember", snap.Username)
}

func TestRestoreSession_ExpiredTokenIsCleared(t *testing.T) {
	env := newTestEnv(t, "")
	token := testToken(t, jwt.MapClaims{
		"preferred_username": "ember",
		"exp":                time.Now().Add(-time.Hour).Unix(),
	})
	require.NoError(t, env.Sessions.Save(token))

	store := &state.Store{}
	env.RestoreSession(store)

	assert.False(t, store.Snapshot().LoggedIn)
	stored, err := env.Sessions.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}
