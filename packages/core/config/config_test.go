package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("xunit", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.BoolP("verbose", "v", false, "")
	flags.BoolP("quiet", "q", false, "")
	flags.Bool("no-color", false, "")
	flags.String("log-format", "text", "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Suites)
	assert.True(t, cfg.IsDefault())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Options{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.True(t, cfg.IsDefault())
	assert.Empty(t, cfg.File)
}

func TestLoad_File(t *testing.T) {
	t.Run("found in search dir", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, ".xunit.yaml", `
suites:
  - calculatortest.CalculatorTest
verbose: true
log_level: debug
`)

		cfg, err := Load(Options{Dir: dir})
		require.NoError(t, err)
		assert.Equal(t, path, cfg.File)
		assert.Equal(t, []string{"calculatortest.CalculatorTest"}, cfg.Suites)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("search order", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "xunit.yaml", "quiet: true\n")
		writeFile(t, dir, ".xunit.yml", "no_color: true\n")

		cfg, err := Load(Options{Dir: dir})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, ".xunit.yml"), cfg.File)
		assert.True(t, cfg.NoColor)
		assert.False(t, cfg.Quiet)
	})

	t.Run("explicit file", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "custom.yaml", "log_format: json\n")

		cfg, err := Load(Options{File: path})
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("explicit file missing", func(t *testing.T) {
		_, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.yaml")})
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".xunit.yaml", "suites: [unclosed\n")

		_, err := Load(Options{Dir: dir})
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestLoad_Schema(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "parallel: true\n", "parallel"},
		{"wrong type", "verbose: loud\n", "verbose"},
		{"bad enum", "log_format: xml\n", "log_format"},
		{"empty suite", "suites: [\"\"]\n", "suites"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, ".xunit.yaml", tt.content)

			_, err := Load(Options{Dir: dir})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("XUNIT_SUITES", "a.Suite, b.Suite,,")
	t.Setenv("XUNIT_NO_COLOR", "true")
	t.Setenv("XUNIT_LOG_LEVEL", "warn")

	dir := t.TempDir()
	writeFile(t, dir, ".xunit.yaml", "log_level: debug\nsuites: [c.Suite]\n")

	cfg, err := Load(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.Suite", "b.Suite"}, cfg.Suites)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_EnvFile(t *testing.T) {
	unsetEnv(t, "XUNIT_LOG_FORMAT")
	unsetEnv(t, "XUNIT_QUIET")
	t.Setenv("XUNIT_LOG_LEVEL", "error")

	dir := t.TempDir()
	envFile := writeFile(t, dir, "test.env", "XUNIT_LOG_FORMAT=json\nXUNIT_QUIET=true\nXUNIT_LOG_LEVEL=debug\n")

	cfg, err := Load(Options{Dir: dir, EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Quiet)
	// variables already in the environment win over the dotenv file
	assert.Equal(t, "error", cfg.LogLevel)

	t.Run("missing", func(t *testing.T) {
		_, err := Load(Options{Dir: dir, EnvFile: filepath.Join(dir, "missing.env")})
		assert.Error(t, err)
	})
}

func TestLoad_Flags(t *testing.T) {
	t.Setenv("XUNIT_LOG_FORMAT", "json")

	dir := t.TempDir()
	writeFile(t, dir, ".xunit.yaml", "log_level: warn\nno_color: false\n")

	t.Run("changed flags win", func(t *testing.T) {
		cfg, err := Load(Options{Dir: dir, Flags: testFlags(t, "--log-format=text", "--no-color", "-v")})
		require.NoError(t, err)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.True(t, cfg.NoColor)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("unchanged flags keep lower layers", func(t *testing.T) {
		cfg, err := Load(Options{Dir: dir, Flags: testFlags(t, "--config", "ignored.yaml")})
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.False(t, cfg.Verbose)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"log format", func(c *Config) { c.LogFormat = "xml" }},
		{"log level", func(c *Config) { c.LogLevel = "chatty" }},
		{"verbose and quiet", func(c *Config) { c.Verbose, c.Quiet = true, true }},
		{"empty suite", func(c *Config) { c.Suites = []string{"a.Suite", ""} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	t.Run("env value rejected after merge", func(t *testing.T) {
		t.Setenv("XUNIT_LOG_FORMAT", "xml")
		_, err := Load(Options{Dir: t.TempDir()})
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestConfig_YAML(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Suites = []string{"calculatortest.CalculatorTest"}
	cfg.File = "/tmp/.xunit.yaml"

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Equal(t, `suites:
    - calculatortest.CalculatorTest
verbose: false
quiet: false
no_color: false
log_format: text
log_level: info
`, string(out))
}
