// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"time"

	"folio/internal/models"
)

// UserRepository defines the interface for user data operations.
// Point lookups return (nil, nil) when no user matches.
type UserRepository interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
}

// PostRepository defines the interface for post data operations.
// Lists are ordered by creation time, most recent first. Point lookups and
// UpdatePost return (nil, nil) when no post matches; DeletePost returns false.
// Visibility is not filtered here.
type PostRepository interface {
	GetAllPosts(ctx context.Context) ([]*models.Post, error)
	GetPublishedPosts(ctx context.Context) ([]*models.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)
	UpdatePost(ctx context.Context, id uint, patch models.PostPatch) (*models.Post, error)
	DeletePost(ctx context.Context, id uint) (bool, error)
}

// Storage is the full capability set the rest of the application depends on.
type Storage interface {
	UserRepository
	PostRepository
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
	// Close releases the backing store.
	Close() error
}

const (
	postsTable = "posts"
	usersTable = "users"
)

// storeNow is the write clock. Microsecond precision matches Postgres.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// nextUpdatedAt returns now, or the smallest later instant when the clock
// has not advanced past previous.
func nextUpdatedAt(now, previous time.Time) time.Time {
	if now.After(previous) {
		return now
	}
	return previous.Add(time.Microsecond)
}
