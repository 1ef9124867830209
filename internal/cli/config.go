package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tally/internal/history"
)

// Config is the YAML configuration for the CLI.
type Config struct {
	// HistoryPath is the SQLite database holding committed
	// calculations.
	HistoryPath string `yaml:"history_path"`

	// HistoryCapacity bounds the entry count; oldest entries are
	// evicted past it.
	HistoryCapacity int `yaml:"history_capacity"`
}

// DefaultConfig returns the built-in configuration. The history
// database lives under the user config directory.
func DefaultConfig() Config {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return Config{
		HistoryPath:     filepath.Join(dir, "tally", "history.db"),
		HistoryCapacity: history.DefaultCapacity,
	}
}

// LoadConfig reads the config file at path, falling back to the
// default location. A missing file yields the defaults; a present but
// malformed file is an error. Fields left unset in the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	cfg, err := readConfig(path)
	if err != nil {
		return Config{}, err
	}

	// The history directory may not exist on first run.
	if dir := filepath.Dir(cfg.HistoryPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Config{}, fmt.Errorf("create history directory: %w", err)
		}
	}

	return cfg, nil
}

func readConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := os.UserConfigDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "tally", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.HistoryCapacity <= 0 {
		return Config{}, fmt.Errorf("config %s: history_capacity must be positive", path)
	}

	return cfg, nil
}
