// Package memory provides an in-process Store used by the default backend
// and by tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/encore-rpg/sheetsmith/internal/storage"
)

// Store keeps blobs in a map. Values are copied on the way in and out so
// callers can never alias the stored slice.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

var _ storage.Store = (*Store)(nil)

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *Store) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
