// Command folioctl administers a Folio database: users, posts and schema.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"folio/internal/bootstrap"
	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, openRuntime).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openRuntime connects the configured store. Redis is never needed here.
func openRuntime(ctx context.Context) (*bootstrap.Runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	observability.ConfigureLogger(cfg.Env, cfg.LogLevel)

	return bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{
		Migrate:   database.ShouldAutoMigrate(cfg),
		SkipRedis: true,
	})
}
