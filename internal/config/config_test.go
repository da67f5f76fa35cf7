package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestLoadOverlaysValues(t *testing.T) {
	path := writeConfig(t, `
# shell settings
history_path = /tmp/h.db
log_level = debug
color = off
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/h.db", cfg.HistoryPath)
	require.Equal(t, "debug", cfg.LogLevel)
	require.False(t, cfg.Color)
	require.Equal(t, Defaults().LogPath, cfg.LogPath, "unset keys keep defaults")
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "mystery = value\n")
	_, err := Load(path)
	require.ErrorContains(t, err, "unknown key")
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	path := writeConfig(t, "just some words\n")
	_, err := Load(path)
	require.ErrorContains(t, err, "expected key = value")
}

func TestDataDirHonorsEnv(t *testing.T) {
	t.Setenv("STANZA_DATA_DIR", "/custom/dir")
	cfg := Defaults()
	require.Equal(t, "/custom/dir/history.db", cfg.HistoryPath)
}
