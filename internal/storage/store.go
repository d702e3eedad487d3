// Package storage defines the key-value blob store behind sheet persistence.
//
// Sheets, user catalogs, and history records are all opaque JSON blobs under
// fixed keys; the store never interprets them. Implementations live in the
// memory and postgres subpackages.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a keyed blob store.
//
// Implementations must treat values as opaque and must be safe for use from
// multiple goroutines.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns the keys with the given prefix, sorted ascending.
	List(ctx context.Context, prefix string) ([]string, error)
}
