package domain

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrSlugTaken    = errors.New("slug already in use")
	ErrEmptyTitle   = errors.New("title must not be empty")
)

// Defaults applied when a create request omits the field.
const (
	DefaultAuthor   = "더하우스콘서트"
	DefaultImageURL = "/placeholder.svg?height=400&width=600"
	DefaultCategory = "리뷰"
)

// Tag limits. Adds beyond either cap are dropped, not rejected.
const (
	MaxTags      = 10
	MaxTagLength = 20
)

// DefaultCategories is the fixed category vocabulary. Custom categories are
// session state, not store state.
var DefaultCategories = []string{"리뷰", "인터뷰", "이벤트"}
