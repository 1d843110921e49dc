// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/careerflow-forms/internal/forms"
	"gopkg.in/yaml.v3"
)

// Output formats for validation results.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Environment variables consulted for values missing from flags and the config file.
const (
	EnvForm     = "FORMCHECK_FORM"
	EnvFormat   = "FORMCHECK_FORMAT"
	EnvLogLevel = "FORMCHECK_LOG_LEVEL"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	Form      string `json:"form,omitempty" yaml:"form,omitempty"`             // Registered form name (onboarding, contact, ...)
	Format    string `json:"format,omitempty" yaml:"format,omitempty"`         // Result output format: text or json
	Workers   int    `json:"workers,omitempty" yaml:"workers,omitempty"`       // Files validated concurrently
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`   // zerolog level
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // console or json
}

// Defaults returns the values used when neither flags, file nor environment set them.
func Defaults() Config {
	return Config{
		Format:    FormatText,
		Workers:   4,
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// LoadConfig loads configuration from a JSON file, or YAML for .yaml/.yml paths.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Form != "" {
		if _, ok := forms.Lookup(c.Form); !ok {
			return fmt.Errorf("config error: unknown form %q (known: %s)", c.Form, strings.Join(forms.Names(), ", "))
		}
	}

	if c.Format != "" && c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("config error: 'format' must be %q or %q", FormatText, FormatJSON)
	}

	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}

	if c.LogFormat != "" && c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("config error: 'log_format' must be \"console\" or \"json\"")
	}

	return nil
}

// WithEnv returns a copy with empty fields filled from the environment.
func (c Config) WithEnv(getenv func(string) string) Config {
	if c.Form == "" {
		c.Form = getenv(EnvForm)
	}
	if c.Format == "" {
		c.Format = getenv(EnvFormat)
	}
	if c.LogLevel == "" {
		c.LogLevel = getenv(EnvLogLevel)
	}
	return c
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Form == "" {
		result.Form = defaults.Form
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	return result
}
