package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths_UsesHomeDir(t *testing.T) {
	t.Setenv(StateDirEnv, "")
	orig := homeDirFunc
	t.Cleanup(func() { homeDirFunc = orig })
	homeDirFunc = func() (string, error) { return "/home/ada", nil }

	paths, err := DefaultPaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/ada", ".config", "pinset"), paths.StateDir)
	assert.Equal(t, filepath.Join(paths.StateDir, "config.toml"), paths.ConfigPath)
}

func TestDefaultPaths_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(StateDirEnv, dir)

	paths, err := DefaultPaths()
	require.NoError(t, err)
	assert.Equal(t, dir, paths.StateDir)
}

func TestDefaultPaths_HomeDirError(t *testing.T) {
	t.Setenv(StateDirEnv, "")
	orig := homeDirFunc
	t.Cleanup(func() { homeDirFunc = orig })
	homeDirFunc = func() (string, error) { return "", errors.New("no home") }

	_, err := DefaultPaths()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no home")
}

func TestCredentialPath(t *testing.T) {
	paths := PathsFor("/state")

	got, err := paths.CredentialPath(&Config{Store: StoreConfig{Backend: BackendFile}})
	require.NoError(t, err)
	assert.Equal(t, paths.CredentialFile, got)

	got, err = paths.CredentialPath(&Config{Store: StoreConfig{Backend: BackendSQLite}})
	require.NoError(t, err)
	assert.Equal(t, paths.CredentialDB, got)

	got, err = paths.CredentialPath(&Config{Store: StoreConfig{Backend: BackendSQLite, Path: "/custom/pin.db"}})
	require.NoError(t, err)
	assert.Equal(t, "/custom/pin.db", got)
}
