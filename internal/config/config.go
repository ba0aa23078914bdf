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
	// Document
	Title    string                       `json:"title,omitempty"`    // CV title
	Template string                       `json:"template,omitempty"` // Template catalog id
	Values   map[string]map[string]string `json:"values,omitempty"`   // sectionId -> fieldId -> value
	Prompt   string                       `json:"prompt,omitempty"`   // Free-text prompt for AI generation

	// Candidate Info
	Name  string `json:"name,omitempty"`  // Candidate display name (export filename)
	Email string `json:"email,omitempty"` // Account email

	// Behavior
	Output   string `json:"output,omitempty"`    // PDF output path
	StoreURL string `json:"store_url,omitempty"` // Document-store base URL
	APIKey   string `json:"api_key,omitempty"`   // Gemini API key
	Plan     string `json:"plan,omitempty"`      // Subscription plan (free, pro)
	Verbose  bool   `json:"verbose,omitempty"`   // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Plan != "" && c.Plan != "free" && c.Plan != "pro" {
		return fmt.Errorf("config error: 'plan' must be \"free\" or \"pro\", got %q", c.Plan)
	}

	if c.Output != "" {
		dir := filepath.Dir(c.Output)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("config error: output directory not found: %s", dir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Title == "" {
		result.Title = defaults.Title
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Prompt == "" {
		result.Prompt = defaults.Prompt
	}
	if result.Name == "" {
		result.Name = defaults.Name
	}
	if result.Email == "" {
		result.Email = defaults.Email
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.StoreURL == "" {
		result.StoreURL = defaults.StoreURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Plan == "" {
		result.Plan = defaults.Plan
	}

	if result.Values == nil {
		result.Values = defaults.Values
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
