package config

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/xunit/packages/core/logging"
)

// ErrInvalid is wrapped by every error about configuration content.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the xunit configuration
type Config struct {
	Suites    []string `koanf:"suites" yaml:"suites"`         // Suites run when none are named on the command line
	Verbose   bool     `koanf:"verbose" yaml:"verbose"`       // Print every invoked method
	Quiet     bool     `koanf:"quiet" yaml:"quiet"`           // Print nothing but errors
	NoColor   bool     `koanf:"no_color" yaml:"no_color"`     // Disable colored output
	LogFormat string   `koanf:"log_format" yaml:"log_format"` // text or json
	LogLevel  string   `koanf:"log_level" yaml:"log_level"`   // debug, info, warn or error

	// File is the config file that was loaded, if any.
	File string `koanf:"-" yaml:"-"`
}

// ConfigFilenames contains the possible config file names, in search order
var ConfigFilenames = []string{
	".xunit.yaml",
	".xunit.yml",
	"xunit.yaml",
}

// Validate checks the effective configuration after all layers are merged.
func (c *Config) Validate() error {
	if !slices.Contains([]string{logging.FormatText, logging.FormatJSON}, c.LogFormat) {
		return fmt.Errorf("%w: log_format %q (use text or json)", ErrInvalid, c.LogFormat)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Verbose && c.Quiet {
		return fmt.Errorf("%w: verbose and quiet cannot both be set", ErrInvalid)
	}
	for i, s := range c.Suites {
		if s == "" {
			return fmt.Errorf("%w: suites[%d] is empty", ErrInvalid, i)
		}
	}
	return nil
}

// YAML renders the configuration the way it would be written to a config file.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
