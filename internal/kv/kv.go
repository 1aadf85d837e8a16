// Package kv provides the durable key-value store the rest of the
// application persists through. Values are opaque strings; callers
// serialize their own records.
package kv

import (
	"context"
	"errors"
)

// ErrUnavailable reports that the backing store could not be reached.
// Mutations that fail with it must not be treated as applied.
var ErrUnavailable = errors.New("kv: store unavailable")

// Store defines persistence operations over string keys and values.
type Store interface {
	// Get returns the value for key. The boolean is false when the key
	// is absent; absence is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
