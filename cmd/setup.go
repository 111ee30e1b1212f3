package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/readlist/internal/repositories"
	"github.com/desertthunder/readlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file from the embedded template when it is missing and opens the configured store,
// which creates the tables (SQLite) or buckets (BoltDB).
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := r.configPath
	if configPath == "" {
		configPath = cmd.String("config")
	}

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("using existing config file", "path", configPath)
		r.writePlain("Using existing config: %s\n", configPath)
	} else if os.IsNotExist(err) {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.writePlain("Created config: %s\n", configPath)
	} else {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	backend := r.config.Database.Backend
	if backend == "" {
		backend = repositories.BackendSQLite
	}
	path := r.config.Database.Path
	if path == "" {
		path = repositories.DefaultPath
	}

	r.logger.Info("initializing store", "backend", backend, "path", path)
	if _, err := r.Library(); err != nil {
		return err
	}

	r.writePlainHeader("Setup complete")
	r.writePlain("Backend: %s\n", backend)
	if backend != repositories.BackendMemory {
		r.writePlain("Path:    %s\n", path)
	}
	return nil
}
