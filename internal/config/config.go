// Package config reads the shell's key=value configuration file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config is the resolved shell configuration.
type Config struct {
	HistoryPath string
	LogPath     string
	LogLevel    string
	Color       bool
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	base := dataDir()
	return Config{
		HistoryPath: filepath.Join(base, "history.db"),
		LogPath:     filepath.Join(base, "shell.log"),
		LogLevel:    "warn",
		Color:       true,
	}
}

func dataDir() string {
	if dir := os.Getenv("STANZA_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stanza"
	}
	return filepath.Join(home, ".stanza")
}

// Load reads the config file at path, overlaying values onto Defaults.
// A missing file is not an error. Lines are "key = value"; blank lines
// and #-comments are skipped, unknown keys rejected.
func Load(path string) (Config, error) {
	cfg := Defaults()

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimSuffix(scanner.Text(), "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, fmt.Errorf("config line %d: expected key = value", lineNo)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "history_path":
			cfg.HistoryPath = value
		case "log_path":
			cfg.LogPath = value
		case "log_level":
			cfg.LogLevel = value
		case "color":
			cfg.Color = value == "true" || value == "on" || value == "1"
		default:
			return cfg, fmt.Errorf("config line %d: unknown key %q", lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

// DefaultPath returns where Load looks when the caller does not override
// it.
func DefaultPath() string {
	return filepath.Join(dataDir(), "config")
}
