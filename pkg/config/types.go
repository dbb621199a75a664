// Package config loads and validates the optional logtab configuration.
package config

// Config holds the converter settings.
//
// Every field has a default that reproduces the contractual behavior, so
// running without a configuration file is the normal case.
type Config struct {
	// MaxLineBytes is the input line buffer size, terminator included.
	// Lines whose newline does not arrive within this budget are fatal.
	MaxLineBytes int `yaml:"max_line_bytes"`

	// Header controls whether the fixed column-name row is emitted before
	// any data rows.
	Header bool `yaml:"header"`
}
