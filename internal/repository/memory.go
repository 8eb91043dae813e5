package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"folio/internal/models"
)

var errMemoryDuplicate = errors.New("UNIQUE constraint failed")

// memoryStorage is an in-process Storage. Records are copied on the way in
// and out so callers never share memory with the store.
type memoryStorage struct {
	mu         sync.RWMutex
	users      map[uint]models.User
	posts      map[uint]models.Post
	nextUserID uint
	nextPostID uint
	now        func() time.Time
}

// NewMemoryStorage returns an empty in-memory Storage.
func NewMemoryStorage() Storage {
	return newMemoryStorage(storeNow)
}

func newMemoryStorage(now func() time.Time) *memoryStorage {
	return &memoryStorage{
		users: make(map[uint]models.User),
		posts: make(map[uint]models.Post),
		now:   now,
	}
}

func (s *memoryStorage) Ping(context.Context) error { return nil }

func (s *memoryStorage) Close() error { return nil }

func (s *memoryStorage) GetUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *memoryStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memoryStorage) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return nil, storageError("create_user", "user", "username", errMemoryDuplicate)
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = *user
	return user, nil
}

func (s *memoryStorage) GetAllPosts(context.Context) ([]*models.Post, error) {
	return s.listPosts(false), nil
}

func (s *memoryStorage) GetPublishedPosts(context.Context) ([]*models.Post, error) {
	return s.listPosts(true), nil
}

func (s *memoryStorage) listPosts(publishedOnly bool) []*models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]*models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if publishedOnly && !p.Published {
			continue
		}
		posts = append(posts, clonePost(p))
	}

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts
}

func (s *memoryStorage) GetPostBySlug(_ context.Context, slug string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.posts {
		if p.Slug == slug {
			return clonePost(p), nil
		}
	}
	return nil, nil
}

func (s *memoryStorage) GetPostByID(_ context.Context, id uint) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	return clonePost(p), nil
}

func (s *memoryStorage) slugTaken(slug string, except uint) bool {
	for id, p := range s.posts {
		if id != except && p.Slug == slug {
			return true
		}
	}
	return false
}

func (s *memoryStorage) CreatePost(_ context.Context, post *models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slugTaken(post.Slug, 0) {
		return nil, storageError("create_post", "post", "slug", errMemoryDuplicate)
	}

	now := s.now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	if post.UpdatedAt.Before(post.CreatedAt) {
		post.UpdatedAt = post.CreatedAt
	}

	s.nextPostID++
	post.ID = s.nextPostID
	s.posts[post.ID] = *clonePost(*post)
	return post, nil
}

func (s *memoryStorage) UpdatePost(_ context.Context, id uint, patch models.PostPatch) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	if patch.Slug != nil && s.slugTaken(*patch.Slug, id) {
		return nil, storageError("update_post", "post", "slug", errMemoryDuplicate)
	}

	updated := *clonePost(current)
	patch.Apply(&updated)
	updated.UpdatedAt = nextUpdatedAt(s.now(), current.UpdatedAt)

	s.posts[id] = updated
	return clonePost(updated), nil
}

func (s *memoryStorage) DeletePost(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return false, nil
	}
	delete(s.posts, id)
	return true, nil
}

func clonePost(p models.Post) *models.Post {
	if p.Excerpt != nil {
		excerpt := *p.Excerpt
		p.Excerpt = &excerpt
	}
	return &p
}
