package database

import (
	"context"
	"fmt"

	"folio/internal/config"
	"folio/internal/models"
	"folio/internal/observability"

	"gorm.io/gorm"
)

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
	}
}

// ShouldAutoMigrate reports whether the server applies the schema on boot:
// always outside production, and in production only with DB_AUTO_MIGRATE.
func ShouldAutoMigrate(cfg *config.Config) bool {
	return !cfg.IsProduction() || cfg.DBAutoMigrate
}

// Migrate creates or updates the users and posts tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	observability.Logger.InfoContext(ctx, "Database migration completed")
	return nil
}
