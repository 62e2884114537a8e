package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"github.com/xeipuuv/gojsonschema"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "XUNIT_"

//go:embed schema.json
var schema []byte

// Options controls where Load looks for configuration.
type Options struct {
	// File is an explicit config file. It must exist when set.
	File string
	// Dir is searched for ConfigFilenames when File is empty. Defaults to ".".
	Dir string
	// EnvFile is a dotenv file loaded into the process environment before
	// XUNIT_* variables are read. Variables already set are kept.
	EnvFile string
	// Flags overrides config values with the flags that were explicitly set.
	Flags *pflag.FlagSet
}

// flagKeys maps flag names to config keys. Other flags are ignored.
var flagKeys = map[string]string{
	"verbose":    "verbose",
	"quiet":      "quiet",
	"no-color":   "no_color",
	"log-format": "log_format",
	"log-level":  "log_level",
}

// Load builds the effective configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, validated on its own before it is merged
	path, err := findConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		fk := koanf.New(".")
		if err := fk.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: error reading config file %s: %v", ErrInvalid, path, err)
		}
		if err := validateDocument(fk.Raw()); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := k.Merge(fk); err != nil {
			return nil, fmt.Errorf("merging config file %s: %w", path, err)
		}
	}

	// 3. Environment, optionally seeded from a dotenv file
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", opts.EnvFile, err)
		}
	}
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: unable to decode config: %v", ErrInvalid, err)
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envValue maps XUNIT_LOG_LEVEL to log_level and splits XUNIT_SUITES on commas.
func envValue(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key != "suites" {
		return key, value
	}
	var suites []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			suites = append(suites, s)
		}
	}
	return key, suites
}

// findConfigFile returns the explicit file, or the first of ConfigFilenames
// present in the search directory, or "" if there is none.
func findConfigFile(opts Options) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", fmt.Errorf("%w: config file: %v", ErrInvalid, err)
		}
		return opts.File, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	for _, filename := range ConfigFilenames {
		candidate := filepath.Join(dir, filename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// validateDocument checks a parsed config file against the embedded schema.
func validateDocument(doc map[string]interface{}) error {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: schema validation error: %v", ErrInvalid, err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
}
