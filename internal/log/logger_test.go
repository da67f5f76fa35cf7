package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelDebug, ParseLevel("debug"))
	require.Equal(t, LevelInfo, ParseLevel("INFO"))
	require.Equal(t, LevelError, ParseLevel("Error"))
	require.Equal(t, LevelWarn, ParseLevel("bogus"))
}

func TestLoggerWritesAboveMinLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "shell.log")
	l, err := New(path, LevelInfo)
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	l.Debug("hidden %d", 1)
	l.Info("shown %d", 2)
	l.Error("also shown")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.NotContains(t, content, "hidden 1")
	require.Contains(t, content, "INFO: shown 2")
	require.Contains(t, content, "ERROR: also shown")
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	l.Info("does not panic")
	require.NoError(t, l.Close())
}

func TestCreatesLogDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	l, err := New(filepath.Join(dir, "x.log"), LevelDebug)
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
