// Package catalog holds the in-memory book list and its query helpers.
// The list is loaded once per process from a Fetcher and treated as
// read-only afterwards.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrLoadFailed reports that the catalog fetch failed. The list stays
// empty and a later Load may retry.
var ErrLoadFailed = errors.New("catalog: load failed")

// Fetcher supplies the catalog records. The default implementation is
// SeedFetcher; a real client would satisfy the same interface.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Book, error)
}

// Store is the canonical catalog for the session.
type Store struct {
	fetcher Fetcher

	mu      sync.RWMutex
	books   []Book
	loaded  bool
	loadErr error

	group singleflight.Group
}

// NewStore builds an empty store around the given fetcher.
func NewStore(fetcher Fetcher) *Store {
	return &Store{fetcher: fetcher}
}

// Load populates the list exactly once. Concurrent calls collapse into
// a single fetch; calls after a successful load are no-ops. On failure
// the list stays empty and the error is retained for Err.
func (s *Store) Load(ctx context.Context) error {
	s.mu.RLock()
	done := s.loaded
	s.mu.RUnlock()
	if done {
		return nil
	}

	_, err, _ := s.group.Do("load", func() (any, error) {
		books, err := s.fetcher.Fetch(ctx)
		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.loadErr = fmt.Errorf("%w: %v", ErrLoadFailed, err)
			return nil, s.loadErr
		}
		if seen := duplicateID(books); seen != "" {
			s.loadErr = fmt.Errorf("%w: duplicate book id %q", ErrLoadFailed, seen)
			return nil, s.loadErr
		}
		s.books = books
		s.loaded = true
		s.loadErr = nil
		return nil, nil
	})
	return err
}

// Loaded reports whether the catalog has been populated.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Err returns the error from the last failed load, nil otherwise.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Books returns the full catalog in load order.
func (s *Store) Books() []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Book, len(s.books))
	copy(out, s.books)
	return out
}

// GetByID returns the record with matching id. The boolean is false
// when no record matches; a miss is not an error.
func (s *Store) GetByID(id string) (Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.books {
		if b.ID == id {
			return b, true
		}
	}
	return Book{}, false
}

// Search returns the books passing the filters, preserving load order.
func (s *Store) Search(f Filters) []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Book
	for _, b := range s.books {
		if Matches(b, f) {
			out = append(out, b)
		}
	}
	return out
}

// ByCategory returns the books whose category matches exactly.
func (s *Store) ByCategory(c Category) []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Book
	for _, b := range s.books {
		if b.Category == c {
			out = append(out, b)
		}
	}
	return out
}

// TopRated returns up to limit books by descending rating. The sort is
// stable so rating ties keep load order, and it works on a copy so the
// catalog itself is never reordered.
func (s *Store) TopRated(limit int) []Book {
	s.mu.RLock()
	sorted := make([]Book, len(s.books))
	copy(sorted, s.books)
	s.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	if limit >= 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

func duplicateID(books []Book) string {
	seen := make(map[string]bool, len(books))
	for _, b := range books {
		if seen[b.ID] {
			return b.ID
		}
		seen[b.ID] = true
	}
	return ""
}
