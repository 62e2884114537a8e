// Package config handles configuration loading and management for xunit.
//
// It provides functionality for:
//   - Loading configuration from .xunit.yaml, .xunit.yml or xunit.yaml files
//   - Schema validation of config files
//   - XUNIT_* environment variables, optionally read from a dotenv file
//   - Command line flag overrides
//   - Default configuration values
package config
