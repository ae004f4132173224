package store

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/lockstep/service/dao"
)

// MemoryStore is a generic in-memory implementation of dao.Service keyed by
// a string. Values are copied on Save and on Load so that callers never share
// a stored record.
type MemoryStore[T any] struct {
	mu          sync.RWMutex
	records     map[string]T
	keySelector func(*T) string
}

// NewMemoryStore creates a new MemoryStore; keySelector extracts the record
// key from a value.
func NewMemoryStore[T any](keySelector func(*T) string) *MemoryStore[T] {
	return &MemoryStore[T]{
		records:     make(map[string]T),
		keySelector: keySelector,
	}
}

var _ dao.Service[string, int] = (*MemoryStore[int])(nil)

// Save stores or overwrites a record.
func (s *MemoryStore[T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	if key == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = *v
	return nil
}

// Load returns a copy of the record stored under key.
func (s *MemoryStore[T]) Load(_ context.Context, key string) (*T, error) {
	if key == "" {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return &v, nil
}

// Delete removes a record.
func (s *MemoryStore[T]) Delete(_ context.Context, key string) error {
	if key == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return dao.ErrNotFound
	}
	delete(s.records, key)
	return nil
}

// List returns copies of all stored records ordered by key.
func (s *MemoryStore[T]) List(_ context.Context) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*T, 0, len(keys))
	for _, k := range keys {
		v := s.records[k]
		out = append(out, &v)
	}
	return out, nil
}
