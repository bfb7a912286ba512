// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Job string `json:"job,omitempty"` // Path to job posting text file
	CV  string `json:"cv,omitempty"`  // Path to CV text file

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Strictness  string `json:"strictness,omitempty"`   // conservative, moderate, or aggressive
	CoverLetter bool   `json:"cover_letter,omitempty"` // Also generate a cover letter
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information

	// Discovery limits
	DiscoveryConcurrency int     `json:"discovery_concurrency,omitempty"` // Concurrent transferable-skill lookups
	DiscoveryRateLimit   float64 `json:"discovery_rate_limit,omitempty"`  // Requests per second for discovery calls

	// Model overrides, by tier
	Models map[string]string `json:"models,omitempty"` // e.g. {"standard": "gemini-2.5-flash"}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Strictness != "" {
		switch c.Strictness {
		case "conservative", "moderate", "aggressive":
		default:
			return fmt.Errorf("config error: 'strictness' must be conservative, moderate, or aggressive")
		}
	}

	if c.DiscoveryConcurrency < 0 {
		return fmt.Errorf("config error: 'discovery_concurrency' must be non-negative")
	}
	if c.DiscoveryRateLimit < 0 {
		return fmt.Errorf("config error: 'discovery_rate_limit' must be non-negative")
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	if c.CV != "" {
		if _, err := os.Stat(c.CV); os.IsNotExist(err) {
			return fmt.Errorf("config error: cv file not found: %s", c.CV)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.CV == "" {
		result.CV = defaults.CV
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Strictness == "" {
		result.Strictness = defaults.Strictness
	}
	if result.DiscoveryConcurrency == 0 {
		result.DiscoveryConcurrency = defaults.DiscoveryConcurrency
	}
	if result.DiscoveryRateLimit == 0 {
		result.DiscoveryRateLimit = defaults.DiscoveryRateLimit
	}
	if len(result.Models) == 0 {
		result.Models = defaults.Models
	}
	if !result.CoverLetter {
		result.CoverLetter = defaults.CoverLetter
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
