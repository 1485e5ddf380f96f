package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"

	"github.com/auri-community/blog/blog/domain"
)

// PostService sits between the REST layer and the post repository. It owns
// the policy decisions the repository does not: validation, defaults, id
// assignment, and slug derivation.
type PostService struct {
	repo domain.PostRepository

	now func() time.Time

	// id sequencing; guards against two creates landing on the same
	// millisecond so identifiers are never reused.
	idMu   sync.Mutex
	lastMs int64
	idSeq  int
}

func NewPostService(repo domain.PostRepository) *PostService {
	return &PostService{
		repo: repo,
		now:  time.Now,
	}
}

// CreateParams carries the fields a caller may set on a new post. Anything
// omitted falls back to a default.
type CreateParams struct {
	Title    string
	Excerpt  string
	Content  string
	Category string
	Tags     []string
	Author   string
	ImageURL string
	Featured bool
	IsDraft  bool
	Slug     string
}

// UpdateParams carries a partial update. Nil fields keep the stored value.
// There is deliberately no slug field: the slug is fixed at creation.
type UpdateParams struct {
	Title    *string
	Excerpt  *string
	Content  *string
	Category *string
	Tags     *[]string
	Author   *string
	ImageURL *string
	Featured *bool
	IsDraft  *bool
}

// Create validates the params, fills defaults, assigns an identifier and a
// unique slug, and stores the post. PublishedAt is set here and never again.
func (s *PostService) Create(ctx context.Context, params CreateParams) (*domain.Post, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}

	now := s.now()
	p := &domain.Post{
		ID:          s.nextID(now),
		Title:       title,
		Excerpt:     params.Excerpt,
		Content:     params.Content,
		Category:    params.Category,
		Tags:        NormalizeTags(params.Tags),
		Author:      params.Author,
		PublishedAt: now,
		ImageURL:    params.ImageURL,
		Featured:    params.Featured,
		IsDraft:     params.IsDraft,
	}

	if p.Category == "" {
		p.Category = domain.DefaultCategory
	}
	if p.Author == "" {
		p.Author = domain.DefaultAuthor
	}
	if p.ImageURL == "" {
		p.ImageURL = domain.DefaultImageURL
	}

	base := params.Slug
	if base == "" {
		base = title
	}
	derived := slug.Make(base)
	if derived == "" {
		// Nothing slug-able in the title; fall back to the opaque id.
		derived = p.ID
	}

	// Try the derived slug, then counter-suffixed variants (my-post,
	// my-post-2, ...). The repository's ErrSlugTaken is the backstop for a
	// create racing between the lookup and the insert.
	for n := 1; ; n++ {
		candidate := derived
		if n > 1 {
			candidate = derived + "-" + strconv.Itoa(n)
		}
		if _, err := s.repo.GetBySlug(ctx, candidate); err == nil {
			continue
		}

		p.Slug = candidate
		err := s.repo.Create(ctx, p)
		if err == nil {
			log.Info().Str("id", p.ID).Str("slug", p.Slug).Msg("Created post")
			return p, nil
		}
		if !errors.Is(err, domain.ErrSlugTaken) {
			return nil, fmt.Errorf("failed to create post: %w", err)
		}
	}
}

// Update merges params onto the stored post for slug. An explicit empty
// title is rejected; an omitted one keeps the stored title.
func (s *PostService) Update(ctx context.Context, postSlug string, params UpdateParams) (*domain.Post, error) {
	p, err := s.repo.GetBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, domain.ErrEmptyTitle
		}
		p.Title = title
	}
	if params.Excerpt != nil {
		p.Excerpt = *params.Excerpt
	}
	if params.Content != nil {
		p.Content = *params.Content
	}
	if params.Category != nil {
		p.Category = *params.Category
	}
	if params.Tags != nil {
		p.Tags = NormalizeTags(*params.Tags)
	}
	if params.Author != nil {
		p.Author = *params.Author
	}
	if params.ImageURL != nil {
		p.ImageURL = *params.ImageURL
	}
	if params.Featured != nil {
		p.Featured = *params.Featured
	}
	if params.IsDraft != nil {
		p.IsDraft = *params.IsDraft
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	log.Info().Str("slug", p.Slug).Msg("Updated post")
	return p, nil
}

func (s *PostService) Get(ctx context.Context, postSlug string) (*domain.Post, error) {
	return s.repo.GetBySlug(ctx, postSlug)
}

func (s *PostService) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Post, error) {
	return s.repo.List(ctx, filter)
}

func (s *PostService) Delete(ctx context.Context, postSlug string) error {
	if err := s.repo.Delete(ctx, postSlug); err != nil {
		return err
	}
	log.Info().Str("slug", postSlug).Msg("Deleted post")
	return nil
}

// nextID returns the creation timestamp in unix milliseconds, extended with
// a sequence number when a millisecond repeats.
func (s *PostService) nextID(now time.Time) string {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	ms := now.UnixMilli()
	if ms <= s.lastMs {
		s.idSeq++
		return fmt.Sprintf("%d-%d", s.lastMs, s.idSeq)
	}
	s.lastMs = ms
	s.idSeq = 0
	return strconv.FormatInt(ms, 10)
}

// NormalizeTags trims, de-duplicates, and caps the tag set: at most
// MaxTags entries of at most MaxTagLength runes. Offending entries are
// dropped silently rather than failing the whole request.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || len([]rune(t)) > domain.MaxTagLength {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		if len(out) == domain.MaxTags {
			break
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
