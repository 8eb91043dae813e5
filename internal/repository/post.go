package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"folio/internal/models"
	"folio/internal/observability"

	"gorm.io/gorm"
)

var errPostMissing = errors.New("post missing")

// postRepository implements PostRepository on GORM.
type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
	now func() time.Time
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{
		db:  db,
		log: observability.NewRepoLogger(postsTable),
		now: storeNow,
	}
}

func (r *postRepository) span(ctx context.Context, op string) (context.Context, func(error)) {
	done := observability.TrackQuery(op, postsTable)
	ctx, span := observability.StartStorageSpan(ctx, op, postsTable, r.db.Dialector.Name())
	return ctx, func(err error) {
		done()
		observability.EndSpan(span, err)
	}
}

func (r *postRepository) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	return r.list(ctx, "get_all_posts", false)
}

func (r *postRepository) GetPublishedPosts(ctx context.Context) ([]*models.Post, error) {
	return r.list(ctx, "get_published_posts", true)
}

func (r *postRepository) list(ctx context.Context, op string, publishedOnly bool) (posts []*models.Post, err error) {
	ctx, end := r.span(ctx, op)
	defer func() { end(err) }()

	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if publishedOnly {
		q = q.Where("published = ?", true)
	}

	posts = make([]*models.Post, 0)
	if err = q.Find(&posts).Error; err != nil {
		return nil, storageError(op, "post", "slug", err)
	}

	r.log.Log(ctx, op, slog.Int("count", len(posts)))
	return posts, nil
}

func (r *postRepository) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return r.first(ctx, "get_post_by_slug", "slug = ?", slug)
}

func (r *postRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	return r.first(ctx, "get_post_by_id", "id = ?", id)
}

func (r *postRepository) first(ctx context.Context, op, query string, arg any) (post *models.Post, err error) {
	ctx, end := r.span(ctx, op)
	defer func() { end(err) }()

	var p models.Post
	if err = r.db.WithContext(ctx).Where(query, arg).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Log(ctx, op, slog.Bool("found", false))
			return nil, nil
		}
		return nil, storageError(op, "post", "slug", err)
	}

	r.log.Log(ctx, op, slog.Bool("found", true), slog.Uint64("id", uint64(p.ID)))
	return &p, nil
}

func (r *postRepository) CreatePost(ctx context.Context, post *models.Post) (_ *models.Post, err error) {
	const op = "create_post"
	ctx, end := r.span(ctx, op)
	defer func() { end(err) }()

	now := r.now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	if post.UpdatedAt.Before(post.CreatedAt) {
		post.UpdatedAt = post.CreatedAt
	}

	if err = r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, storageError(op, "post", "slug", err)
	}

	r.log.Log(ctx, op, slog.Uint64("id", uint64(post.ID)), slog.String("slug", post.Slug))
	return post, nil
}

func (r *postRepository) UpdatePost(ctx context.Context, id uint, patch models.PostPatch) (_ *models.Post, err error) {
	const op = "update_post"
	ctx, end := r.span(ctx, op)
	defer func() { end(err) }()

	var updated models.Post
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Post
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errPostMissing
			}
			return err
		}

		cols := patch.Columns()
		cols["updated_at"] = nextUpdatedAt(r.now(), current.UpdatedAt)

		if err := tx.Model(&models.Post{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return err
		}
		return tx.First(&updated, id).Error
	})

	if errors.Is(err, errPostMissing) {
		r.log.Log(ctx, op, slog.Uint64("id", uint64(id)), slog.Bool("found", false))
		return nil, nil
	}
	if err != nil {
		return nil, storageError(op, "post", "slug", err)
	}

	r.log.Log(ctx, op, slog.Uint64("id", uint64(id)), slog.Bool("found", true))
	return &updated, nil
}

func (r *postRepository) DeletePost(ctx context.Context, id uint) (_ bool, err error) {
	const op = "delete_post"
	ctx, end := r.span(ctx, op)
	defer func() { end(err) }()

	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if err = res.Error; err != nil {
		return false, storageError(op, "post", "slug", err)
	}

	deleted := res.RowsAffected > 0
	r.log.Log(ctx, op, slog.Uint64("id", uint64(id)), slog.Bool("deleted", deleted))
	return deleted, nil
}
