// Package logging builds the slog loggers used by the CLI and runner.
package logging
