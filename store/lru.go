package store

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/katalvlaran/agglom/agglom"
)

// Cached fronts a Store with a bounded LRU of decoded trees.
// Reads hit the LRU first; writes go through to the backing store.
//
// Unlike Memory and Badger, Cached hands out the same *agglom.Tree to every
// caller that hits the same key, and keeps the pointer passed to Put.
// Treat returned trees as read-only.
type Cached struct {
	next  Store
	cache *lru.Cache[uint64, *agglom.Tree]
}

// WithLRU wraps next with an LRU holding up to size trees.
func WithLRU(next Store, size int) (*Cached, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	c, err := lru.New[uint64, *agglom.Tree](size)
	if err != nil {
		return nil, fmt.Errorf("store: lru: %w", err)
	}

	return &Cached{next: next, cache: c}, nil
}

// Get returns the cached tree, falling back to the backing store and
// remembering the result.
func (s *Cached) Get(ctx context.Context, key uint64) (*agglom.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t, ok := s.cache.Get(key); ok {
		return t, nil
	}
	t, err := s.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, t)

	return t, nil
}

// Put writes through and caches t on success.
func (s *Cached) Put(ctx context.Context, key uint64, t *agglom.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.next.Put(ctx, key, t); err != nil {
		return err
	}
	s.cache.Add(key, t)

	return nil
}

// Len reports the number of cached trees.
func (s *Cached) Len() int { return s.cache.Len() }

// Close purges the cache and closes the backing store.
func (s *Cached) Close() error {
	s.cache.Purge()

	return s.next.Close()
}

// IsMiss reports whether err is a cache miss.
func IsMiss(err error) bool { return errors.Is(err, ErrNotFound) }
