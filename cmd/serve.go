package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rcavaliericopy-max/salomao/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the library HTTP server until interrupted. The admin
// account is guaranteed and an empty store is seeded before listening.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	store, err := r.openStore(cmd)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	gateway, err := r.gateway(cmd)
	if err != nil {
		return err
	}
	if err := gateway.EnsureAdminUser(); err != nil {
		return fmt.Errorf("failed to ensure admin account: %w", err)
	}

	seeder, err := r.seeder(cmd)
	if err != nil {
		return err
	}
	if _, err := seeder.SeedIfEmpty(ctx); err != nil {
		r.logger.Warn("initial seeding incomplete", "error", err)
	}

	srv, err := server.New(config.Server, store, gateway, seeder, r.logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Listen(ctx)
}
