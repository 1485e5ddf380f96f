package domain

import (
	"context"
	"time"
)

// Post represents a blog post.
// Content holds the serialized HTML snapshot produced by the rich-text
// editor. Slug is the external lookup key and is frozen at creation;
// ID is an opaque internal token that is never reused, even after delete.
type Post struct {
	ID          string
	Title       string
	Excerpt     string
	Content     string
	Category    string
	Tags        []string
	Author      string
	PublishedAt time.Time
	ImageURL    string
	Featured    bool
	IsDraft     bool
	Slug        string
}

// ListFilter narrows the result of a List call. The zero value returns
// every published post, newest first.
type ListFilter struct {
	// Featured restricts the listing to featured posts when non-nil and true.
	Featured *bool
	// Limit truncates the filtered, sorted listing. Zero means no limit.
	Limit int
	// IncludeDrafts adds draft posts to the listing. Public listings leave
	// this false; the admin listing sets it.
	IncludeDrafts bool
}

type PostRepository interface {
	// List returns posts in non-increasing PublishedAt order. It never fails;
	// an empty store yields an empty slice.
	List(ctx context.Context, filter ListFilter) ([]*Post, error)

	// GetBySlug returns ErrPostNotFound when no post has the slug. Drafts are
	// retrievable by slug so the admin edit flow can load them.
	GetBySlug(ctx context.Context, slug string) (*Post, error)

	// Create inserts the post at the head of the collection. Returns
	// ErrSlugTaken if the slug is already present.
	Create(ctx context.Context, p *Post) error

	// Update replaces the stored post for p.Slug. The slug itself is
	// immutable. Returns ErrPostNotFound if the slug is unknown.
	Update(ctx context.Context, p *Post) error

	// Delete removes the post. Returns ErrPostNotFound if the slug is unknown.
	Delete(ctx context.Context, slug string) error
}
