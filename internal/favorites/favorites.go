// Package favorites maintains the per-user favorite-book set. Every
// mutation writes the full user record through to the durable store
// before it is considered applied.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bookchat/internal/kv"
	"bookchat/pkg/domain"
)

// ErrNotFound reports that no stored user matches the given id.
var ErrNotFound = errors.New("favorites: user not found")

// Store toggles and queries favorite-book membership. It holds no state
// of its own: the stored user record is the single source of truth, so
// a failed write can never leave memory ahead of the store.
type Store struct {
	kv kv.Store
}

// NewStore builds a favorites store over the durable kv store.
func NewStore(store kv.Store) *Store {
	return &Store{kv: store}
}

// Toggle flips membership of bookID in the user's favorites: present
// ids are removed, absent ids are appended at the end (so a re-added
// favorite moves to the tail, matching the documented policy). The
// updated record is persisted before the new set is returned.
func (s *Store) Toggle(ctx context.Context, userID, bookID string) ([]string, error) {
	user, err := s.currentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := make([]string, 0, len(user.FavoriteBooks)+1)
	removed := false
	for _, id := range user.FavoriteBooks {
		if id == bookID {
			removed = true
			continue
		}
		updated = append(updated, id)
	}
	if !removed {
		updated = append(updated, bookID)
	}
	user.FavoriteBooks = updated

	if err := s.persist(ctx, user); err != nil {
		return nil, err
	}
	return updated, nil
}

// IsFavorite reports membership. Unknown users simply have no favorites.
func (s *Store) IsFavorite(ctx context.Context, userID, bookID string) bool {
	user, err := s.currentUser(ctx, userID)
	if err != nil {
		return false
	}
	for _, id := range user.FavoriteBooks {
		if id == bookID {
			return true
		}
	}
	return false
}

// List returns the user's favorites in stored order.
func (s *Store) List(ctx context.Context, userID string) ([]string, error) {
	user, err := s.currentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(user.FavoriteBooks))
	copy(out, user.FavoriteBooks)
	return out, nil
}

func (s *Store) currentUser(ctx context.Context, userID string) (domain.User, error) {
	raw, ok, err := s.kv.Get(ctx, domain.StorageKeyUser)
	if err != nil {
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	if !ok {
		return domain.User{}, ErrNotFound
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return domain.User{}, fmt.Errorf("decode user: %w", err)
	}
	if user.ID != userID {
		return domain.User{}, ErrNotFound
	}
	return user, nil
}

func (s *Store) persist(ctx context.Context, user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.Set(ctx, domain.StorageKeyUser, string(data)); err != nil {
		return fmt.Errorf("persist favorites: %w", err)
	}
	return nil
}
