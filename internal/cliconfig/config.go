// Package cliconfig loads the bidsmap tool configuration.
package cliconfig

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Config holds tool-level settings. Domain files (heuristics, bidsmaps)
// stay YAML; this file only points at them.
type Config struct {
	RawDir        string `toml:"raw_dir"`
	HeuristicsDir string `toml:"heuristics_dir"`
	Bidsmap       string `toml:"bidsmap"`
	DatabasePath  string `toml:"database_path"`
	LogLevel      string `toml:"log_level"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Bidsmap:  "bidsmap",
		LogLevel: "info",
	}
}

// DefaultPath returns the standard config file location
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "bidsmap.toml"
	}
	return filepath.Join(dir, "bidsmap", "config.toml")
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// WriteSample writes the commented sample configuration to path, creating
// parent directories as needed. Refuses to overwrite an existing file.
func WriteSample(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// SlogLevel maps the configured log level onto slog
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
