package config

const (
	DefaultLogFormat = "text"
	DefaultLogLevel  = "info"
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Suites:    nil,
		Verbose:   false,
		Quiet:     false,
		NoColor:   false,
		LogFormat: DefaultLogFormat,
		LogLevel:  DefaultLogLevel,
	}
}

// defaultValues is DefaultConfig keyed the way koanf sees it.
func defaultValues() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"suites":     []string{},
		"verbose":    d.Verbose,
		"quiet":      d.Quiet,
		"no_color":   d.NoColor,
		"log_format": d.LogFormat,
		"log_level":  d.LogLevel,
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	d := DefaultConfig()
	return len(c.Suites) == 0 &&
		c.Verbose == d.Verbose &&
		c.Quiet == d.Quiet &&
		c.NoColor == d.NoColor &&
		c.LogFormat == d.LogFormat &&
		c.LogLevel == d.LogLevel
}
