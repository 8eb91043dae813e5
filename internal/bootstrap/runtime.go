// Package bootstrap assembles the process-lifetime dependencies shared by
// the server and the admin CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/observability"
	"folio/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// Migrate applies the schema after connecting. Ignored for the memory driver.
	Migrate bool
	// SkipRedis leaves Redis unconnected even when REDIS_URL is set.
	SkipRedis bool
}

// Runtime holds the explicitly constructed store and clients. DB is nil for
// the memory driver; Redis is nil when unconfigured or unreachable.
type Runtime struct {
	Config *config.Config
	Store  repository.Storage
	DB     *gorm.DB
	Redis  *redis.Client
}

// InitRuntime connects the configured store and Redis.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	rt := &Runtime{Config: cfg}

	switch cfg.DBDriver {
	case config.DriverMemory:
		observability.Logger.WarnContext(ctx, "Using in-memory storage; data is lost on exit")
		rt.Store = repository.NewMemoryStorage()
	default:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		if opts.Migrate {
			if err := database.Migrate(ctx, db); err != nil {
				_ = database.Close(db)
				return nil, err
			}
		}
		rt.DB = db
		rt.Store = repository.NewStorage(db)
	}

	if !opts.SkipRedis {
		rt.Redis = ConnectRedis(ctx, cfg.RedisURL)
	}

	return rt, nil
}

// Close releases the store and Redis client.
func (rt *Runtime) Close() error {
	var errs []error
	if rt.Store != nil {
		if err := rt.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	if rt.Redis != nil {
		if err := rt.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
