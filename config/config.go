// Package config locates and loads the calculator's configuration and
// history files, following the XDG base directory conventions.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the user-tunable settings read from config.toml.
type Config struct {
	Prompt        string `toml:"prompt"`
	PrecisionBits uint   `toml:"precision-bits"`
	Color         bool   `toml:"color"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Prompt:        "> ",
		PrecisionBits: 128,
	}
}

// ConfigFile returns the path of the config file. The directory is the
// first of $FEND_CONFIG_DIR, $XDG_CONFIG_HOME/fend, and ~/.config/fend.
func ConfigFile() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func configDir() (string, error) {
	if d := os.Getenv("FEND_CONFIG_DIR"); d != "" {
		return d, nil
	}
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "fend"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate config dir: %w", err)
	}
	return filepath.Join(home, ".config", "fend"), nil
}

// HistoryFile returns the path of the REPL history file, creating its
// directory if needed. The directory is the first of $FEND_STATE_DIR,
// $XDG_STATE_HOME/fend, and ~/.local/state/fend.
func HistoryFile() (string, error) {
	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create state dir: %w", err)
	}
	return filepath.Join(dir, "history"), nil
}

func stateDir() (string, error) {
	if d := os.Getenv("FEND_STATE_DIR"); d != "" {
		return d, nil
	}
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return filepath.Join(d, "fend"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate state dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "fend"), nil
}

// Load reads the config file at path over the defaults. A missing file
// is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
