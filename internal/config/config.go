package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HistoryConfig represents run-history store configuration
type HistoryConfig struct {
	// Enabled enables recording of completed runs
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database
	DBPath string `yaml:"db_path"`
}

// Config represents indexgen configuration options
type Config struct {
	// ManifestName is the metadata file read in every directory instead of
	// live filesystem stats (empty = filesystem mode)
	ManifestName string `yaml:"manifest_name"`

	// Delimiter separates fields in manifest lines
	Delimiter string `yaml:"metadata_delimiter"`

	// ExcludePaths are path fragments removed from indexing and traversal
	ExcludePaths []string `yaml:"exclude_paths"`

	// Concurrency is the number of sibling subtrees walked in parallel
	// (1 = sequential)
	Concurrency int `yaml:"concurrency"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// DryRun logs intended writes without performing them
	DryRun bool `yaml:"dry_run"`

	// RenderReadme appends a rendered README.md below each listing
	RenderReadme bool `yaml:"render_readme"`

	// History contains run-history store configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		ManifestName: "",
		Delimiter:    ";",
		ExcludePaths: nil,
		Concurrency:  1,
		LogLevel:     "error",
		DryRun:       false,
		RenderReadme: true,
		History: HistoryConfig{
			Enabled: true,
			DBPath:  filepath.Join(".indexgen", "history.db"),
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Delimiter == "" {
		cfg.Delimiter = ";"
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .indexgen/config.yaml in the
// given directory, falling back to defaults when the file is absent.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".indexgen", "config.yaml"))
}

// MergeFlags applies CLI flag values over the loaded configuration.
// Nil pointers mean the flag was not set and the config value is kept.
func (c *Config) MergeFlags(manifest, delimiter, logLevel *string, excludePaths []string, concurrency *int, dryRun, renderReadme, history *bool) {
	if manifest != nil {
		c.ManifestName = *manifest
	}
	if delimiter != nil && *delimiter != "" {
		c.Delimiter = *delimiter
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if len(excludePaths) > 0 {
		c.ExcludePaths = excludePaths
	}
	if concurrency != nil && *concurrency >= 1 {
		c.Concurrency = *concurrency
	}
	if dryRun != nil {
		c.DryRun = *dryRun
	}
	if renderReadme != nil {
		c.RenderReadme = *renderReadme
	}
	if history != nil {
		c.History.Enabled = *history
	}
}
