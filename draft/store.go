// Package draft persists in-progress authoring state to a local slot,
// independent of the authoritative post store. It is a best-effort safety
// net so a half-written post survives a crash or an accidental navigation,
// never a source of truth for listing or querying posts.
package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var ErrNoDraft = errors.New("no draft snapshot")

const (
	bucketDrafts     = "drafts"
	bucketCategories = "categories"

	// DefaultSlot is the slot the create-post flow uses; the edit flow keys
	// slots by post slug so drafts of different posts don't clobber each other.
	DefaultSlot = "blog_draft"

	categoriesKey = "custom_categories"
)

// Snapshot is one saved authoring state.
type Snapshot struct {
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"imageUrl"`
	Tags      []string  `json:"tags"`
	LastSaved time.Time `json:"lastSaved"`
}

// Store is a bbolt-backed key/value slot file holding draft snapshots and
// the author's custom category list.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the slot file and its buckets.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open draft store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range []string{bucketDrafts, bucketCategories} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDraft overwrites the slot with the snapshot.
func (s *Store) SaveDraft(slot string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketDrafts)).Put([]byte(slot), data)
	})
}

// LoadDraft returns the snapshot in the slot, or ErrNoDraft.
func (s *Store) LoadDraft(slot string) (*Snapshot, error) {
	var snap *Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketDrafts)).Get([]byte(slot))
		if data == nil {
			return ErrNoDraft
		}
		snap = &Snapshot{}
		if err := json.Unmarshal(data, snap); err != nil {
			return fmt.Errorf("failed to decode draft: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ClearDraft deletes the slot. Clearing an empty slot is fine.
func (s *Store) ClearDraft(slot string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketDrafts)).Delete([]byte(slot))
	})
}

// SaveCategories persists the author's custom category list.
func (s *Store) SaveCategories(categories []string) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketCategories)).Put([]byte(categoriesKey), data)
	})
}

// LoadCategories returns the persisted custom category list, or nil when
// none has been saved.
func (s *Store) LoadCategories() ([]string, error) {
	var categories []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketCategories)).Get([]byte(categoriesKey))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &categories)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return categories, nil
}
