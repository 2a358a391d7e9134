package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rcavaliericopy-max/salomao/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup initializes the database, applies migrations, guarantees the
// reserved admin account and seeds the bundled library.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}

	config := r.loadConfig(cmd)
	r.logger.Info("initializing database", "path", config.Database.Path)

	store, err := r.openStore(cmd)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	db, err := store.DB()
	if err != nil {
		return err
	}
	version, err := shared.CurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	r.logger.Info("migrations applied", "version", version)

	gateway, err := r.gateway(cmd)
	if err != nil {
		return err
	}
	if err := gateway.EnsureAdminUser(); err != nil {
		return fmt.Errorf("failed to ensure admin account: %w", err)
	}

	if !cmd.Bool("skip-seed") {
		seeder, err := r.seeder(cmd)
		if err != nil {
			return err
		}
		if _, err := seeder.SeedIfEmpty(ctx); err != nil {
			return fmt.Errorf("failed to seed library: %w", err)
		}
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}
