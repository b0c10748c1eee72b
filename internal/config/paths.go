package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Environment variables consulted during path resolution.
const (
	EnvDataFile   = "_ZL_DATA2"
	EnvConfigFile = "ZJUMP_CONFIG"
)

// ErrNoHome is returned when neither HOME nor USERPROFILE is set.
var ErrNoHome = errors.New("no home directory: set HOME or " + EnvDataFile)

// DefaultConfigPath returns $ZJUMP_CONFIG or <user config dir>/zjump/config.toml.
func DefaultConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "zjump", "config.toml"), nil
}

// DataFile resolves the data file location. The _ZL_DATA2 override wins,
// then the configured path, then ~/.zlua under HOME or USERPROFILE.
func DataFile(cfg Config, getenv func(string) string) (string, error) {
	if p := getenv(EnvDataFile); p != "" {
		return p, nil
	}
	home := getenv("HOME")
	if home == "" {
		home = getenv("USERPROFILE")
	}
	if p := cfg.Data.Path; p != "" {
		if p == "~" || strings.HasPrefix(p, "~/") {
			if home == "" {
				return "", ErrNoHome
			}
			p = filepath.Join(home, p[1:])
		}
		return p, nil
	}
	if home == "" {
		return "", ErrNoHome
	}
	return home + "/.zlua", nil
}

// Resolver computes the data file location once and returns the same
// answer to every caller.
type Resolver struct {
	resolve func() (string, error)
}

// NewResolver returns a Resolver for cfg reading the process environment.
func NewResolver(cfg Config) *Resolver {
	return NewResolverEnv(cfg, os.Getenv)
}

// NewResolverEnv is NewResolver with an explicit environment lookup.
func NewResolverEnv(cfg Config, getenv func(string) string) *Resolver {
	return &Resolver{
		resolve: sync.OnceValues(func() (string, error) {
			return DataFile(cfg, getenv)
		}),
	}
}

// DataFile returns the resolved data file location.
func (r *Resolver) DataFile() (string, error) {
	return r.resolve()
}
