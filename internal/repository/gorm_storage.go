package repository

import (
	"context"

	"folio/internal/database"

	"gorm.io/gorm"
)

type gormStorage struct {
	UserRepository
	PostRepository
	db *gorm.DB
}

// NewStorage returns the GORM-backed Storage. The caller keeps ownership of
// db until Close is called.
func NewStorage(db *gorm.DB) Storage {
	return &gormStorage{
		UserRepository: NewUserRepository(db),
		PostRepository: NewPostRepository(db),
		db:             db,
	}
}

func (s *gormStorage) Ping(ctx context.Context) error {
	return database.Ping(ctx, s.db)
}

func (s *gormStorage) Close() error {
	return database.Close(s.db)
}
