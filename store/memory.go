package store

import (
	"context"
	"sync"

	"github.com/katalvlaran/agglom/agglom"
)

// Memory is a map-backed Store holding encoded trees, so callers never
// share memory with it.
type Memory struct {
	mu     sync.RWMutex
	data   map[uint64][]byte
	closed bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[uint64][]byte)}
}

// Get decodes the tree stored under key.
func (s *Memory) Get(ctx context.Context, key uint64) (*agglom.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	b, ok := s.data[key]
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	if !ok {
		return nil, ErrNotFound
	}

	return decode(b)
}

// Put encodes t and stores it under key, replacing any previous value.
func (s *Memory) Put(ctx context.Context, key uint64, t *agglom.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := encode(t)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.data[key] = b

	return nil
}

// Len returns the number of stored trees.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}

// Close drops all entries. Further calls fail with ErrClosed.
func (s *Memory) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.data = nil

	return nil
}
