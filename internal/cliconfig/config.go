// Package cliconfig holds the CLI configuration for beatsmith and the
// file/env/flag precedence machinery: explicitly set flags win over
// environment variables, which win over the config file.
package cliconfig

import (
	"fmt"
	"strconv"
)

// Config holds the CLI configuration for both subcommands.
type Config struct {
	// convert inputs
	BeatDoc    string
	BeatDoc2   string
	SegmentDoc string
	PrefixOut  string
	Watch      bool

	// drums inputs
	Target     string
	Loops      string
	PrefixBeat int
	Seed       int64

	// shared
	Output      string
	Ticks       int
	Tolerance   float64
	BeatsPerBar int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Loops:       "loops",
		Ticks:       480,
		Tolerance:   0.1,
		BeatsPerBar: 4,
	}
}

// ValidateConvert checks the configuration for the convert subcommand.
func (c *Config) ValidateConvert() error {
	if c.BeatDoc == "" {
		return fmt.Errorf("beat-doc is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive")
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive")
	}
	return nil
}

// ValidateDrums checks the configuration for the drums subcommand.
func (c *Config) ValidateDrums() error {
	if c.Target == "" {
		return fmt.Errorf("target is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if c.Loops == "" {
		return fmt.Errorf("loops is required")
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive")
	}
	if c.BeatsPerBar < 1 {
		return fmt.Errorf("beats-per-bar must be at least 1")
	}
	if c.PrefixBeat < 0 {
		return fmt.Errorf("prefix-beat must not be negative")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't
// been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt64 sets an int64 value if positive and flag not changed.
func (s *configSetter) setInt64(flag string, value int64, dst *int64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntFromString parses a string to int and sets the destination if
// valid. Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setInt64FromString parses a string to int64 and sets the destination
// if valid. Used for environment variables that come as strings.
func (s *configSetter) setInt64FromString(flag, value string, dst *int64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination
// if valid. Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}
