package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/pinset/internal/templates"
)

func TestSetValue_UpdatesEnum(t *testing.T) {
	content, err := templates.Read("config.toml")
	require.NoError(t, err)

	updated, err := SetValue(content, "store.backend", "sqlite")
	require.NoError(t, err)

	cfg, err := ParseConfig(updated, "patched")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, FrontendPad, cfg.UI.Frontend)
}

func TestSetValue_PositiveInt(t *testing.T) {
	content, err := templates.Read("config.toml")
	require.NoError(t, err)

	updated, err := SetValue(content, "announcements.timeout_seconds", "30")
	require.NoError(t, err)
	cfg, err := ParseConfig(updated, "patched")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Announcements.TimeoutSeconds)

	_, err = SetValue(content, "announcements.timeout_seconds", "-2")
	assert.Error(t, err)
}

func TestSetValue_Rejections(t *testing.T) {
	content, err := templates.Read("config.toml")
	require.NoError(t, err)

	_, err = SetValue(content, "store.nope", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")

	_, err = SetValue(content, "ui.frontend", "gui")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.frontend")

	_, err = SetValue([]byte("[store"), "store.path", "/tmp/x")
	require.Error(t, err)
}

func TestWriteValue_CreatesFromTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, WriteValue(path, "biometric.probe", "none"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProbeNone, cfg.Biometric.Probe)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
