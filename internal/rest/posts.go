package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/auri-community/blog/api"
	"github.com/auri-community/blog/blog/application"
	"github.com/auri-community/blog/blog/domain"
)

// PostsHandler exposes the post service over HTTP. Statuses follow the
// original contract: listings never fail, unknown slugs are 404, and a bad
// create or update body is a 500 rather than a 400.
type PostsHandler struct {
	service *application.PostService
}

func NewPostsHandler(service *application.PostService) *PostsHandler {
	return &PostsHandler{service: service}
}

// List handles GET /api/blog?featured=&limit=&drafts=.
func (h *PostsHandler) List(c *gin.Context) {
	filter := domain.ListFilter{}

	if c.Query("featured") == "true" {
		featured := true
		filter.Featured = &featured
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if c.Query("drafts") == "true" {
		filter.IncludeDrafts = true
	}

	posts, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		// The in-memory store cannot fail a listing; keep the contract anyway.
		log.Error().Err(err).Msg("Failed to list posts")
		c.JSON(http.StatusOK, []api.Post{})
		return
	}

	c.JSON(http.StatusOK, api.FromDomainList(posts))
}

// Get handles GET /api/blog/:slug.
func (h *PostsHandler) Get(c *gin.Context) {
	post, err := h.service.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, api.FromDomain(post))
}

// Create handles POST /api/blog.
func (h *PostsHandler) Create(c *gin.Context) {
	var req api.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	post, err := h.service.Create(c.Request.Context(), application.CreateParams{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		Author:   req.Author,
		ImageURL: req.ImageURL,
		Featured: req.Featured,
		IsDraft:  req.IsDraft,
		Slug:     req.Slug,
	})
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, api.FromDomain(post))
}

// Update handles PUT /api/blog/:slug. The path names the post; a slug in
// the body is discarded.
func (h *PostsHandler) Update(c *gin.Context) {
	postSlug := c.Param("slug")

	var req api.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	post, err := h.service.Update(c.Request.Context(), postSlug, application.UpdateParams{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		Author:   req.Author,
		ImageURL: req.ImageURL,
		Featured: req.Featured,
		IsDraft:  req.IsDraft,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		log.Error().Err(err).Str("slug", postSlug).Msg("Failed to update post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, api.FromDomain(post))
}

// Delete handles DELETE /api/blog/:slug.
func (h *PostsHandler) Delete(c *gin.Context) {
	postSlug := c.Param("slug")

	if err := h.service.Delete(c.Request.Context(), postSlug); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		log.Error().Err(err).Str("slug", postSlug).Msg("Failed to delete post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
