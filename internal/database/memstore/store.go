// Package memstore is an in-memory record collection guarded by a RWMutex.
// Readers always get a snapshot, so queries never observe a half-applied write.
package memstore

import (
	"errors"
	"sync"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Store keeps records in insertion order. Clone, when set, is applied to every
// record crossing the store boundary so callers never share nested slices.
type Store[T any] struct {
	mu      sync.RWMutex
	records []T
	id      func(T) string
	clone   func(T) T
}

// New seeds a store. id extracts the record key; clone may be nil for flat records.
func New[T any](seed []T, id func(T) string, clone func(T) T) *Store[T] {
	s := &Store[T]{id: id, clone: clone}
	s.records = make([]T, 0, len(seed))
	for _, r := range seed {
		s.records = append(s.records, s.copy(r))
	}
	return s
}

func (s *Store[T]) copy(r T) T {
	if s.clone == nil {
		return r
	}
	return s.clone(r)
}

func (s *Store[T]) indexOf(id string) int {
	for i, r := range s.records {
		if s.id(r) == id {
			return i
		}
	}
	return -1
}

// List returns a snapshot of every record.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.records))
	for i, r := range s.records {
		out[i] = s.copy(r)
	}
	return out
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store[T]) Get(id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.copy(s.records[i]), nil
	}
	var zero T
	return zero, ErrNotFound
}

// Create appends r; its id must be unused.
func (s *Store[T]) Create(r T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(s.id(r)) >= 0 {
		return ErrDuplicate
	}
	s.records = append(s.records, s.copy(r))
	return nil
}

// Update applies fn to the stored record under the write lock and returns the
// result. The last writer wins.
func (s *Store[T]) Update(id string, fn func(*T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	i := s.indexOf(id)
	if i < 0 {
		return zero, ErrNotFound
	}

	next := s.copy(s.records[i])
	if err := fn(&next); err != nil {
		return zero, err
	}
	s.records[i] = next
	return s.copy(next), nil
}

func (s *Store[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	last := len(s.records) - 1
	copy(s.records[i:], s.records[i+1:])
	// drop the stale tail reference so the backing array does not pin it
	clear(s.records[last:])
	s.records = s.records[:last]
	return nil
}
