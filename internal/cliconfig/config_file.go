package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors the shared knobs of Config for the TOML config
// file. Per-run inputs (documents, target, output) stay flag-only.
type FileConfig struct {
	Loops       string  `toml:"loops"`
	Ticks       int     `toml:"ticks"`
	Tolerance   float64 `toml:"tolerance"`
	BeatsPerBar int     `toml:"beats_per_bar"`
	Seed        int64   `toml:"seed"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.beatsmith/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".beatsmith", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config
// struct. It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("loops", fc.Loops, &cfg.Loops)
	s.setInt("ticks", fc.Ticks, &cfg.Ticks)
	s.setFloat("tolerance", fc.Tolerance, &cfg.Tolerance)
	s.setInt("beats-per-bar", fc.BeatsPerBar, &cfg.BeatsPerBar)
	s.setInt64("seed", fc.Seed, &cfg.Seed)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
