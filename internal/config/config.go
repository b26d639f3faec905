// Package config loads and saves the tool configuration as TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the persisted configuration.
type Config struct {
	// BasePath is the directory holding the candidate directories.
	BasePath string `toml:"base_path"`
	// NoColors disables all ANSI color output.
	NoColors bool `toml:"no_colors"`
	// MetaMargin is the minimum gap, in columns, kept between an entry name
	// and its right-aligned metadata before the metadata degrades.
	MetaMargin int `toml:"meta_margin"`
	// MetaMinOverlap is how many metadata columns must survive a partial
	// layout before the metadata is hidden entirely.
	MetaMinOverlap int `toml:"meta_min_overlap"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	base := ".tries"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".tries")
	}
	return &Config{
		BasePath:       base,
		NoColors:       false,
		MetaMargin:     2,
		MetaMinOverlap: 6,
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			home = "."
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "trysel", "config.toml")
}

// Load reads the configuration at path. A missing file returns defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MetaMargin < 0 {
		cfg.MetaMargin = 0
	}
	if cfg.MetaMinOverlap < 1 {
		cfg.MetaMinOverlap = 1
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
