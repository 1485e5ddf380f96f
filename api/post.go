package api

import (
	"time"

	"github.com/auri-community/blog/blog/domain"
)

// Post is the JSON shape every blog endpoint returns.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
	ImageURL    string    `json:"imageUrl"`
	Featured    bool      `json:"featured"`
	IsDraft     bool      `json:"isDraft"`
	Slug        string    `json:"slug"`
}

// CreatePostRequest is the POST body. Only the title is required; everything
// else has a server-side default.
type CreatePostRequest struct {
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Author   string   `json:"author"`
	ImageURL string   `json:"imageUrl"`
	Featured bool     `json:"featured"`
	IsDraft  bool     `json:"isDraft"`
	Slug     string   `json:"slug"`
}

// UpdatePostRequest is the PUT body. Absent fields leave the stored value
// alone. A slug in the body is accepted and discarded: the path decides
// which post changes and the slug itself never does.
type UpdatePostRequest struct {
	Title    *string   `json:"title"`
	Excerpt  *string   `json:"excerpt"`
	Content  *string   `json:"content"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
	Author   *string   `json:"author"`
	ImageURL *string   `json:"imageUrl"`
	Featured *bool     `json:"featured"`
	IsDraft  *bool     `json:"isDraft"`
	Slug     *string   `json:"slug"`
}

// UploadResponse is returned by the image upload endpoint.
type UploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	Filename string `json:"filename"`
}

// FromDomain maps a domain post onto the wire shape.
func FromDomain(p *domain.Post) Post {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return Post{
		ID:          p.ID,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		Category:    p.Category,
		Tags:        tags,
		Author:      p.Author,
		PublishedAt: p.PublishedAt,
		ImageURL:    p.ImageURL,
		Featured:    p.Featured,
		IsDraft:     p.IsDraft,
		Slug:        p.Slug,
	}
}

// FromDomainList maps a listing, guaranteeing a non-nil (possibly empty)
// array on the wire.
func FromDomainList(posts []*domain.Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = FromDomain(p)
	}
	return out
}
