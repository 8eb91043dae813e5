package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"folio/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, true},
		{"postgres wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"postgres not null", &pgconn.PgError{Code: "23502"}, false},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, true},
		{"sqlite not null", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, false},
		{"message fallback", errors.New("UNIQUE constraint failed: posts.slug"), true},
		{"generic", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

func TestStorageError_Mapping(t *testing.T) {
	conflict := storageError("create_post", "post", "slug", &pgconn.PgError{Code: "23505"})
	var appErr *models.AppError
	require.ErrorAs(t, conflict, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.Equal(t, "slug", appErr.Field)
	assert.Equal(t, "A post with this slug already exists", appErr.Message)

	fault := storageError("get_all_posts", "post", "slug", errors.New("boom"))
	require.ErrorAs(t, fault, &appErr)
	assert.Equal(t, models.CodeInternal, appErr.Code)
	assert.Equal(t, "Internal server error", appErr.Message)
	assert.ErrorContains(t, fault, "boom")
}

func TestPostRepository_CreateUniqueViolation_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	_, err := repo.CreatePost(context.Background(), newPost("taken", true))
	require.Error(t, err)
	assert.True(t, models.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Create_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	post, err := repo.CreatePost(context.Background(), newPost("fresh", true))
	require.NoError(t, err)
	assert.Equal(t, uint(7), post.ID)
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListFault_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE published = $1 ORDER BY created_at DESC,id DESC`)).
		WithArgs(true).
		WillReturnError(errors.New("connection reset by peer"))

	posts, err := repo.GetPublishedPosts(context.Background())
	require.Error(t, err)
	assert.Nil(t, posts)
	assert.Equal(t, models.CodeInternal, models.ErrorCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetBySlug_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE slug = $1 ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs("hello", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug", "published"}).AddRow(3, "Hello", "hello", true))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE slug = $1 ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs("nope", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	post, err := repo.GetPostBySlug(context.Background(), "hello")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, uint(3), post.ID)

	post, err = repo.GetPostBySlug(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, post)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_DeleteFault_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE "posts"."id" = $1`)).
		WithArgs(5).
		WillReturnError(errors.New("timeout"))
	mock.ExpectRollback()

	deleted, err := repo.DeletePost(context.Background(), 5)
	require.Error(t, err)
	assert.False(t, deleted)
	assert.Equal(t, models.CodeInternal, models.ErrorCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUniqueViolation_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.CreateUser(context.Background(), &models.User{Username: "admin", Password: "x"})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.Equal(t, "username", appErr.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}
