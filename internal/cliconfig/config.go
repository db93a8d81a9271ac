// Package cliconfig holds configuration for the parcel CLI, layered from
// defaults, an optional TOML file, environment variables, and flags.
// Explicitly set flags always win.
package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds CLI configuration for parcel.
type Config struct {
	// File is the default container file operated on when no positional
	// argument is given.
	File string

	// FollowDebounce is how long inspect --follow waits after a change
	// before re-reading, collapsing write bursts.
	FollowDebounce time.Duration

	// MaxDump is the maximum number of bytes hex-dumped per frame.
	MaxDump int

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FollowDebounce: 100 * time.Millisecond,
		MaxDump:        64,
		File:           os.Getenv("PARCEL_FILE"),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.FollowDebounce <= 0 {
		return fmt.Errorf("follow debounce must be positive")
	}
	if c.MaxDump < 0 {
		return fmt.Errorf("max dump must not be negative")
	}
	return nil
}

// ApplyEnv overlays PARCEL_* environment variables onto cfg, skipping any
// value already fixed by an explicitly set flag.
func ApplyEnv(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("file", os.Getenv("PARCEL_FILE"), &cfg.File)
	if err := s.setDuration("follow-debounce", os.Getenv("PARCEL_FOLLOW_DEBOUNCE"), &cfg.FollowDebounce); err != nil {
		return err
	}
	if v := os.Getenv("PARCEL_VERBOSE"); v != "" && !changed["verbose"] {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PARCEL_VERBOSE: %w", err)
		}
		cfg.Verbose = b
	}
	return nil
}

// configSetter applies values while respecting explicitly set flags.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) configSetter {
	return configSetter{changed: changed}
}

func (s configSetter) setString(flag, val string, dst *string) {
	if val != "" && !s.changed[flag] {
		*dst = val
	}
}

func (s configSetter) setInt(flag string, val int, dst *int) {
	if val != 0 && !s.changed[flag] {
		*dst = val
	}
}

func (s configSetter) setBool(flag string, val *bool, dst *bool) {
	if val != nil && !s.changed[flag] {
		*dst = *val
	}
}

func (s configSetter) setDuration(flag, val string, dst *time.Duration) error {
	if val == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("%s: %w", flag, err)
	}
	*dst = d
	return nil
}
