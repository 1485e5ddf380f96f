package editor

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/auri-community/blog/blog/domain"
)

var (
	ErrCategoryExists    = errors.New("category already exists")
	ErrProtectedCategory = errors.New("default categories cannot be deleted")
)

// CategoryStore persists the author's custom category list across sessions.
type CategoryStore interface {
	LoadCategories() ([]string, error)
	SaveCategories(categories []string) error
}

// SessionState is the explicit form state of one authoring session: the
// fields that become the post on submit, the tag set with its caps, and the
// custom category vocabulary. It replaces the ambient globals of a browser
// session with an object handed to the controller at construction.
type SessionState struct {
	Title    string
	Excerpt  string
	Content  string
	Category string
	ImageURL string
	Tags     []string

	customCategories []string
	store            CategoryStore
}

// NewSessionState builds a fresh session, loading any persisted custom
// categories. A nil store means categories live only as long as the session.
func NewSessionState(store CategoryStore) (*SessionState, error) {
	s := &SessionState{
		Category: domain.DefaultCategory,
		store:    store,
	}
	if store != nil {
		custom, err := store.LoadCategories()
		if err != nil {
			return nil, fmt.Errorf("failed to load custom categories: %w", err)
		}
		s.customCategories = custom
	}
	return s, nil
}

// AddTag appends a tag, enforcing the caps: at most MaxTags entries of at
// most MaxTagLength runes, no duplicates. A rejected add is a silent no-op
// and returns false.
func (s *SessionState) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || utf8.RuneCountInString(tag) > domain.MaxTagLength {
		return false
	}
	if len(s.Tags) >= domain.MaxTags || slices.Contains(s.Tags, tag) {
		return false
	}
	s.Tags = append(s.Tags, tag)
	return true
}

// RemoveTag drops a tag if present.
func (s *SessionState) RemoveTag(tag string) {
	s.Tags = slices.DeleteFunc(s.Tags, func(t string) bool { return t == tag })
}

// AllCategories returns the default vocabulary followed by the author's
// custom categories.
func (s *SessionState) AllCategories() []string {
	out := append([]string(nil), domain.DefaultCategories...)
	return append(out, s.customCategories...)
}

// AddCategory registers a custom category, persists the list, and selects
// the new category for the current post.
func (s *SessionState) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("category name must not be empty")
	}
	if slices.Contains(s.AllCategories(), name) {
		return ErrCategoryExists
	}

	s.customCategories = append(s.customCategories, name)
	if err := s.persistCategories(); err != nil {
		return err
	}
	s.Category = name
	return nil
}

// DeleteCategory removes a custom category. Defaults are protected. When
// the current post used the deleted category, the selection falls back to
// the first default.
func (s *SessionState) DeleteCategory(name string) error {
	if slices.Contains(domain.DefaultCategories, name) {
		return ErrProtectedCategory
	}

	before := len(s.customCategories)
	s.customCategories = slices.DeleteFunc(s.customCategories, func(c string) bool { return c == name })
	if len(s.customCategories) == before {
		return nil
	}
	if err := s.persistCategories(); err != nil {
		return err
	}
	if s.Category == name {
		s.Category = domain.DefaultCategory
	}
	return nil
}

func (s *SessionState) persistCategories() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.SaveCategories(s.customCategories); err != nil {
		return fmt.Errorf("failed to save custom categories: %w", err)
	}
	return nil
}
