package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/encore-rpg/sheetsmith/internal/storage"
)

// BlobStore implements storage.Store on a single keyed table. Sheets, user
// catalogs, and history records all go through it as opaque JSON.
type BlobStore struct {
	db *pgxpool.Pool
}

// NewBlobStore creates a BlobStore backed by the given pool.
//
// Precondition: db must be a valid, open connection pool with the blobs
// migration applied.
func NewBlobStore(db *pgxpool.Pool) *BlobStore {
	return &BlobStore{db: db}
}

var _ storage.Store = (*BlobStore)(nil)

// Get returns the value stored under key.
//
// Postcondition: Returns storage.ErrNotFound when the key is absent.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, `
		SELECT value FROM blobs WHERE key = $1`,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("querying blob %q: %w", key, err)
	}
	return value, nil
}

// Put upserts the value under key.
func (s *BlobStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO blobs (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("upserting blob %q: %w", key, err)
	}
	return nil
}

// Delete removes key; a missing key is not an error.
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM blobs WHERE key = $1`, key); err != nil {
		return fmt.Errorf("deleting blob %q: %w", key, err)
	}
	return nil
}

// List returns the keys with the given prefix, sorted ascending.
func (s *BlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT key FROM blobs WHERE key LIKE $1 || '%' ORDER BY key ASC`,
		prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("listing blobs with prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning blob key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
