// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post is a blog post. Slug is the public lookup key.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Slug      string    `gorm:"not null;uniqueIndex" json:"slug"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Excerpt   *string   `gorm:"type:text" json:"excerpt"`
	Published bool      `gorm:"not null;default:false;index" json:"published"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostDraft is a validated create payload. Nil pointers are fields the caller omitted.
type PostDraft struct {
	Title     string
	Slug      *string
	Content   string
	Excerpt   *string
	Published *bool
}

// PostPatch is a validated partial update. Nil pointers leave the stored field untouched.
type PostPatch struct {
	Title     *string
	Slug      *string
	Content   *string
	Excerpt   *string
	Published *bool
}

// IsEmpty reports whether the patch carries no fields.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Slug == nil && p.Content == nil && p.Excerpt == nil && p.Published == nil
}

// Columns returns the column/value pairs of the fields present in the patch.
func (p PostPatch) Columns() map[string]any {
	cols := make(map[string]any, 5)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Slug != nil {
		cols["slug"] = *p.Slug
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.Excerpt != nil {
		cols["excerpt"] = *p.Excerpt
	}
	if p.Published != nil {
		cols["published"] = *p.Published
	}
	return cols
}

// Apply copies the present patch fields onto post.
func (p PostPatch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Slug != nil {
		post.Slug = *p.Slug
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Excerpt != nil {
		excerpt := *p.Excerpt
		post.Excerpt = &excerpt
	}
	if p.Published != nil {
		post.Published = *p.Published
	}
}
