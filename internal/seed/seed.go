// Package seed creates demo and fixture posts for development databases.
// Every post is submitted through the post service, so seeded content is
// validated and normalized exactly like API traffic.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"folio/internal/models"
	"folio/internal/observability"
	"folio/internal/service"
)

// Options controls generated content.
type Options struct {
	// Count is the number of generated posts.
	Count int
	// Publish marks generated posts as published.
	Publish bool
	// Seed makes generation deterministic. Zero picks a random seed.
	Seed int64
	DryRun bool
}

// Result summarizes a seeding run.
type Result struct {
	Created int
	// Skipped counts posts rejected because their slug already exists.
	Skipped int
}

// Seeder submits fixtures to the post service.
type Seeder struct {
	posts *service.PostService
	opts  Options
}

// NewSeeder creates a Seeder backed by posts.
func NewSeeder(posts *service.PostService, opts Options) *Seeder {
	return &Seeder{posts: posts, opts: opts}
}

// Generate creates opts.Count posts from a Factory.
func (s *Seeder) Generate(ctx context.Context) (Result, error) {
	f := NewFactory(s.opts)
	fixtures := make([]Fixture, 0, s.opts.Count)
	for range s.opts.Count {
		fixtures = append(fixtures, f.BuildFixture())
	}
	return s.Apply(ctx, fixtures)
}

// Apply submits fixtures in order. Slug conflicts are skipped; any other
// failure stops the run.
func (s *Seeder) Apply(ctx context.Context, fixtures []Fixture) (Result, error) {
	var res Result
	for i, fx := range fixtures {
		body, err := json.Marshal(fx)
		if err != nil {
			return res, fmt.Errorf("encode fixture %d: %w", i, err)
		}

		if s.opts.DryRun {
			observability.Logger.InfoContext(ctx, "[dry-run] seed post", slog.Int("index", i), slog.String("body", string(body)))
			res.Created++
			continue
		}

		post, err := s.posts.Create(ctx, body)
		if models.IsConflict(err) {
			observability.Logger.WarnContext(ctx, "Skipping seed post with existing slug", slog.Int("index", i))
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("seed post %d: %w", i, err)
		}

		observability.Logger.DebugContext(ctx, "Seeded post", slog.Uint64("id", uint64(post.ID)), slog.String("slug", post.Slug))
		res.Created++
	}
	return res, nil
}
