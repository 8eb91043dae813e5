// Package service holds the application's use cases on top of the repositories.
package service

import (
	"context"

	"folio/internal/content"
	"folio/internal/models"
	"folio/internal/observability"
	"folio/internal/repository"
	"folio/internal/validation"
)

// PostService validates, normalizes and stores posts. It owns the
// visibility policy for unpublished posts.
type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPublished returns published posts, most recent first.
func (s *PostService) ListPublished(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.GetPublishedPosts(ctx)
}

// ListAll returns every post, most recent first.
func (s *PostService) ListAll(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.GetAllPosts(ctx)
}

// GetBySlug returns the post with slug. Unpublished posts are reported as
// not found unless includeUnpublished is set.
func (s *PostService) GetBySlug(ctx context.Context, slug string, includeUnpublished bool) (*models.Post, error) {
	post, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil || (!post.Published && !includeUnpublished) {
		return nil, models.NewNotFoundError("Post")
	}
	return post, nil
}

// GetByID returns the post with id regardless of visibility.
func (s *PostService) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post")
	}
	return post, nil
}

// Create validates a raw JSON payload, runs the content pipeline and stores the post.
func (s *PostService) Create(ctx context.Context, body []byte) (*models.Post, error) {
	draft, err := validation.InsertPost(body)
	if err != nil {
		observability.RecordPostWrite("create", outcome(err))
		return nil, err
	}
	return s.CreateDraft(ctx, draft)
}

// CreateDraft runs the content pipeline on an already validated draft and stores it.
func (s *PostService) CreateDraft(ctx context.Context, draft models.PostDraft) (*models.Post, error) {
	post, err := content.PrepareInsert(draft)
	if err != nil {
		observability.RecordPostWrite("create", outcome(err))
		return nil, err
	}

	created, err := s.postRepo.CreatePost(ctx, post)
	observability.RecordPostWrite("create", outcome(err))
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial JSON payload to the post with id.
func (s *PostService) Update(ctx context.Context, id uint, body []byte) (*models.Post, error) {
	patch, err := validation.UpdatePost(body)
	if err != nil {
		observability.RecordPostWrite("update", outcome(err))
		return nil, err
	}

	patch, err = content.PrepareUpdate(patch)
	if err != nil {
		observability.RecordPostWrite("update", outcome(err))
		return nil, err
	}

	updated, err := s.postRepo.UpdatePost(ctx, id, patch)
	if err == nil && updated == nil {
		err = models.NewNotFoundError("Post")
	}
	observability.RecordPostWrite("update", outcome(err))
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the post with id.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.postRepo.DeletePost(ctx, id)
	if err == nil && !deleted {
		err = models.NewNotFoundError("Post")
	}
	observability.RecordPostWrite("delete", outcome(err))
	return err
}

// outcome labels a write result for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case models.ErrorCode(err) == models.CodeValidation:
		return "invalid"
	case models.ErrorCode(err) == models.CodeConflict:
		return "conflict"
	case models.ErrorCode(err) == models.CodeNotFound:
		return "not_found"
	default:
		return "error"
	}
}
