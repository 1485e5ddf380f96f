package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/auri-community/blog/blog/domain"
)

var _ domain.PostRepository = (*MemoryPostRepository)(nil)

// MemoryPostRepository holds the authoritative post collection in process
// memory. Nothing survives a restart. The slice keeps insertion order with
// the newest post at the head, so the default listing favors recency even
// before sorting.
type MemoryPostRepository struct {
	mu    sync.RWMutex
	posts []*domain.Post
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{}
}

// List filters and sorts a copy of the collection. The sort is stable, so
// posts sharing a PublishedAt keep their head-first insertion order.
func (r *MemoryPostRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if p.IsDraft && !filter.IncludeDrafts {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		filtered = append(filtered, p)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].PublishedAt.After(filtered[j].PublishedAt)
	})

	if filter.Limit > 0 && len(filtered) > filter.Limit {
		filtered = filtered[:filter.Limit]
	}

	out := make([]*domain.Post, len(filtered))
	for i, p := range filtered {
		out[i] = clone(p)
	}
	return out, nil
}

func (r *MemoryPostRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(slug); i >= 0 {
		return clone(r.posts[i]), nil
	}
	return nil, domain.ErrPostNotFound
}

func (r *MemoryPostRepository) Create(ctx context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(p.Slug) >= 0 {
		return domain.ErrSlugTaken
	}

	r.posts = append([]*domain.Post{clone(p)}, r.posts...)
	return nil
}

func (r *MemoryPostRepository) Update(ctx context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(p.Slug)
	if i < 0 {
		return domain.ErrPostNotFound
	}

	r.posts[i] = clone(p)
	return nil
}

func (r *MemoryPostRepository) Delete(ctx context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(slug)
	if i < 0 {
		return domain.ErrPostNotFound
	}

	r.posts = append(r.posts[:i], r.posts[i+1:]...)
	return nil
}

// indexOf requires the caller to hold at least a read lock.
func (r *MemoryPostRepository) indexOf(slug string) int {
	for i, p := range r.posts {
		if p.Slug == slug {
			return i
		}
	}
	return -1
}

// clone keeps callers from mutating the stored post through the returned
// pointer. Tags are the only reference field on Post.
func clone(p *domain.Post) *domain.Post {
	c := *p
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	return &c
}
