package config

import (
	"os"
	"strconv"

	"logtab/pkg/reader"
)

// Environment variable names.
const (
	EnvMaxLineBytes = "LOGTAB_MAX_LINE_BYTES"
)

// DefaultConfig returns a configuration with the contractual defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxLineBytes: reader.DefaultMaxLineBytes,
		Header:       true,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the
// config. Unparsable values are ignored; validation catches out-of-range
// ones afterwards.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvMaxLineBytes); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxLineBytes = n
		}
	}
}
