// Package config provides unified configuration loading for the veldt
// engine and CLI. It supports loading from YAML files and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/veldt-lang/veldt/internal/constants"
)

// Config contains all engine configuration settings.
type Config struct {
	// Logging contains settings for operational and violation logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Index contains settings for the adaptive property index.
	Index IndexConfig `json:"index" yaml:"index"`

	// Paths contains settings for bounded path search.
	Paths PathsConfig `json:"paths" yaml:"paths"`
}

// LoggingConfig configures the engine's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or
	// "trace". "debug" enables violation tracing to
	// .veldt/violations.jsonl.
	Level string `json:"level" yaml:"level"`

	// TraceDir is the directory for the violation trace. Defaults to
	// ".veldt" in the working directory.
	TraceDir string `json:"trace_dir,omitempty" yaml:"trace_dir,omitempty"`
}

// IndexConfig configures the adaptive property index.
type IndexConfig struct {
	// Threshold is the number of lookups on one property after which its
	// index is built.
	Threshold int `json:"threshold" yaml:"threshold"`
}

// PathsConfig configures bounded path enumeration.
type PathsConfig struct {
	// MaxLength bounds all-paths search when the caller passes no limit.
	MaxLength int `json:"max_length" yaml:"max_length"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			TraceDir: ".veldt",
		},
		Index: IndexConfig{
			Threshold: constants.IndexThreshold,
		},
		Paths: PathsConfig{
			MaxLength: constants.DefaultMaxPathLength,
		},
	}
}

// Load loads configuration from the default locations and environment
// variables. Order: defaults -> ~/.veldt/config.yaml -> environment
// variables.
func Load() (*Config, error) {
	config := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".veldt", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Index.Threshold < 1 {
		return fmt.Errorf("index threshold must be at least 1, got %d", c.Index.Threshold)
	}

	if c.Paths.MaxLength < 1 {
		return fmt.Errorf("max path length must be at least 1, got %d", c.Paths.MaxLength)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("VELDT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("VELDT_TRACE_DIR"); v != "" {
		config.Logging.TraceDir = v
	}

	if v := os.Getenv("VELDT_INDEX_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Index.Threshold = n
		}
	}

	if v := os.Getenv("VELDT_MAX_PATH_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Paths.MaxLength = n
		}
	}
}
