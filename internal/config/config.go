package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all zjump configuration.
type Config struct {
	Data  DataConfig  `toml:"data"`
	Log   LogConfig   `toml:"log"`
	List  ListConfig  `toml:"list"`
	Match MatchConfig `toml:"match"`
}

type DataConfig struct {
	Path string `toml:"path"` // data file; "~/" is expanded
}

type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

type ListConfig struct {
	Color string `toml:"color"` // "auto", "always", "never"
	Limit int    `toml:"limit"` // 0 means unlimited
}

type MatchConfig struct {
	// IgnoreCase overrides the platform path identity rule when set.
	IgnoreCase *bool `toml:"ignore_case"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Data: DataConfig{
			Path: "", // resolved at runtime, see DataFile
		},
		Log: LogConfig{
			Level: "warn",
		},
		List: ListConfig{
			Color: "auto",
		},
	}
}

// Load reads the TOML file at path on top of the defaults.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	switch c.List.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("list.color %q: want auto, always or never", c.List.Color)
	}
	if c.List.Limit < 0 {
		return fmt.Errorf("list.limit %d: must not be negative", c.List.Limit)
	}
	return nil
}
