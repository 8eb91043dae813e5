package repository

import (
	"context"
	"errors"
	"log/slog"

	"folio/internal/models"
	"folio/internal/observability"

	"gorm.io/gorm"
)

// userRepository implements UserRepository on GORM.
type userRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, log: observability.NewRepoLogger(usersTable)}
}

func (r *userRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return r.first(ctx, "get_user", "id = ?", id)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "get_user_by_username", "username = ?", username)
}

func (r *userRepository) first(ctx context.Context, op, query string, arg any) (_ *models.User, err error) {
	defer observability.TrackQuery(op, usersTable)()
	ctx, span := observability.StartStorageSpan(ctx, op, usersTable, r.db.Dialector.Name())
	defer func() { observability.EndSpan(span, err) }()

	var user models.User
	if err = r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageError(op, "user", "username", err)
	}

	r.log.Log(ctx, op, slog.Uint64("id", uint64(user.ID)))
	return &user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) (_ *models.User, err error) {
	const op = "create_user"
	defer observability.TrackQuery(op, usersTable)()
	ctx, span := observability.StartStorageSpan(ctx, op, usersTable, r.db.Dialector.Name())
	defer func() { observability.EndSpan(span, err) }()

	if err = r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, storageError(op, "user", "username", err)
	}

	r.log.Log(ctx, op, slog.Uint64("id", uint64(user.ID)))
	return user, nil
}
