// Package content normalizes post payloads before they are stored: slug
// derivation, HTML sanitization and excerpt derivation.
package content

import (
	"folio/internal/models"
	"folio/internal/observability"
)

// Pipeline step labels used in metrics.
const (
	StepSanitize      = "sanitize"
	StepDeriveSlug    = "derive_slug"
	StepDeriveExcerpt = "derive_excerpt"
)

// PrepareInsert turns a validated draft into a post ready for insertion.
// The returned post always carries an excerpt.
func PrepareInsert(draft models.PostDraft) (*models.Post, error) {
	slug, err := resolveSlug(draft.Slug, draft.Title)
	if err != nil {
		return nil, err
	}

	body := Sanitize(draft.Content)
	observability.RecordTransform(StepSanitize)

	var excerpt string
	if draft.Excerpt != nil {
		excerpt = *draft.Excerpt
	} else {
		excerpt = Excerpt(body)
		observability.RecordTransform(StepDeriveExcerpt)
	}

	post := &models.Post{
		Title:   draft.Title,
		Slug:    slug,
		Content: body,
		Excerpt: &excerpt,
	}
	if draft.Published != nil {
		post.Published = *draft.Published
	}
	return post, nil
}

// PrepareUpdate applies the pipeline to the fields present in patch. A
// title without a slug re-derives the slug; content without an excerpt
// re-derives the excerpt.
func PrepareUpdate(patch models.PostPatch) (models.PostPatch, error) {
	out := patch

	if patch.Slug != nil && *patch.Slug != "" {
		out.Slug = patch.Slug
	} else if patch.Title != nil {
		slug, err := resolveSlug(nil, *patch.Title)
		if err != nil {
			return models.PostPatch{}, err
		}
		out.Slug = &slug
	} else if patch.Slug != nil {
		// empty slug with no title to derive from
		return models.PostPatch{}, emptySlugError()
	}

	if patch.Content != nil {
		body := Sanitize(*patch.Content)
		observability.RecordTransform(StepSanitize)
		out.Content = &body

		if patch.Excerpt == nil {
			excerpt := Excerpt(body)
			observability.RecordTransform(StepDeriveExcerpt)
			out.Excerpt = &excerpt
		}
	}

	return out, nil
}

// resolveSlug returns explicit when it is non-empty, otherwise derives one
// from title.
func resolveSlug(explicit *string, title string) (string, error) {
	if explicit != nil && *explicit != "" {
		return *explicit, nil
	}
	slug := Slugify(title)
	observability.RecordTransform(StepDeriveSlug)
	if slug == "" {
		return "", emptySlugError()
	}
	return slug, nil
}

func emptySlugError() error {
	return models.NewValidationError("Validation error", models.FieldError{
		Field:   "slug",
		Message: "Could not derive a slug from the title",
	})
}
