// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Input      string `json:"input,omitempty"`       // Path to the input CSV/JSON file
	KeysDir    string `json:"keys_dir,omitempty"`    // Directory holding the keyed-alias documents
	ReportsDir string `json:"reports_dir,omitempty"` // Directory for generated report documents
	OutputCSV  string `json:"output_csv,omitempty"`  // Path for scraper CSV output

	// Behavior
	Mode        string `json:"mode,omitempty"`         // Processing mode: "all" or "new"
	Year        int    `json:"year,omitempty"`         // Season the schedule belongs to
	Preview     bool   `json:"preview,omitempty"`      // Report intended changes without writing
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for script-rendered pages
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DelayMillis int    `json:"delay_millis,omitempty"` // Courtesy delay between store writes
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
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
	if c.Mode != "" && c.Mode != "all" && c.Mode != "new" {
		return fmt.Errorf("config error: 'mode' must be \"all\" or \"new\"")
	}

	if c.Year < 0 {
		return fmt.Errorf("config error: 'year' must be non-negative")
	}
	if c.DelayMillis < 0 {
		return fmt.Errorf("config error: 'delay_millis' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}
	if c.KeysDir != "" {
		if _, err := os.Stat(c.KeysDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: keys directory not found: %s", c.KeysDir)
		}
	}

	return nil
}

// Delay returns the configured write delay as a duration.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelayMillis) * time.Millisecond
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.KeysDir == "" {
		result.KeysDir = defaults.KeysDir
	}
	if result.ReportsDir == "" {
		result.ReportsDir = defaults.ReportsDir
	}
	if result.OutputCSV == "" {
		result.OutputCSV = defaults.OutputCSV
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Mode defaults to processing everything
	if result.Mode == "" {
		if defaults.Mode != "" {
			result.Mode = defaults.Mode
		} else {
			result.Mode = "all"
		}
	}

	// Int fields: use default if zero
	if result.Year == 0 {
		result.Year = defaults.Year
	}
	if result.DelayMillis == 0 {
		if defaults.DelayMillis > 0 {
			result.DelayMillis = defaults.DelayMillis
		} else {
			result.DelayMillis = 100
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
