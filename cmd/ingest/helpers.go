package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/musclebase/ingest/internal/config"
	"github.com/musclebase/ingest/internal/db"
	"github.com/musclebase/ingest/internal/keys"
	"github.com/musclebase/ingest/internal/observability"
)

// printer writes the summary boxes every command ends with.
var printer = observability.NewPrinter(os.Stdout)

// resolveConfig merges flag values over an optional config file and
// validates the result. Flag values win.
func resolveConfig(flags config.Config) (config.Config, error) {
	defaults := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		defaults = *loaded
	}

	merged := flags.MergeWithDefaults(defaults)
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// openDB connects to the canonical store, falling back to the
// DATABASE_URL environment variable.
func openDB(ctx context.Context, cfg config.Config) (*db.DB, error) {
	url := databaseURL
	if url == "" {
		url = cfg.DatabaseURL
	}
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return nil, fmt.Errorf("database URL is required: set --database-url or DATABASE_URL")
	}
	return db.Connect(ctx, url)
}

// logf prints per-record progress when --verbose is set.
func logf(format string, args ...any) {
	if verbose {
		fmt.Printf(format+"\n", args...)
	}
}

// loadCompetitionAliases reads the competitions alias document from the
// keys directory.
func loadCompetitionAliases(keysDir string) (keys.AliasSet, error) {
	return keys.LoadCompetitions(filepath.Join(keysDir, "competitions.json"))
}

// loadAthleteAliases reads the athletes alias document from the keys
// directory.
func loadAthleteAliases(keysDir string) (keys.AliasSet, error) {
	return keys.LoadAthletes(filepath.Join(keysDir, "athletes.json"))
}
