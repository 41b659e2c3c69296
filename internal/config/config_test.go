package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"mode": "new",
		"year": 2025,
		"keys_dir": "keys",
		"database_url": "postgres://localhost/musclebase",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "new", cfg.Mode)
	assert.Equal(t, 2025, cfg.Year)
	assert.Equal(t, "keys", cfg.KeysDir)
	assert.Equal(t, "postgres://localhost/musclebase", cfg.DatabaseURL)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_BadMode(t *testing.T) {
	cfg := &Config{
		Mode: "everything",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mode")
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{
		DelayMillis: -1,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "delay_millis")
}

func TestValidate_MissingInput(t *testing.T) {
	cfg := &Config{
		Input: "/nonexistent/schedule.csv",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "input file not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Mode:        "all",
		Year:        2025,
		DelayMillis: 100,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		KeysDir:     "keys",
		ReportsDir:  "reports",
		Year:        2025,
		DelayMillis: 250,
	}

	partial := Config{
		KeysDir: "custom-keys",
		Input:   "schedule.csv",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom-keys", merged.KeysDir)
	assert.Equal(t, "schedule.csv", merged.Input)

	// Default values should fill in empty fields
	assert.Equal(t, "reports", merged.ReportsDir)
	assert.Equal(t, 2025, merged.Year)
	assert.Equal(t, 250, merged.DelayMillis)
	assert.Equal(t, "all", merged.Mode)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Input: "results.csv",
		Mode:  "new",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "results.csv", merged.Input)
	assert.Equal(t, "new", merged.Mode)
	assert.Equal(t, 100, merged.DelayMillis, "write delay defaults on")
	assert.Equal(t, 100*time.Millisecond, merged.Delay())
}
