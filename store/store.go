package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/agglom/agglom"
	"github.com/katalvlaran/agglom/matrix"
)

var (
	// ErrNotFound indicates a cache miss.
	ErrNotFound = errors.New("store: tree not found")

	// ErrClosed indicates use of a closed store.
	ErrClosed = errors.New("store: closed")

	// ErrBadSize indicates a non-positive LRU capacity.
	ErrBadSize = errors.New("store: cache size must be positive")
)

// keyPrefix namespaces tree records in shared key spaces.
const keyPrefix = "tree/"

// Store persists trees by fingerprint. Implementations are safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key uint64) (*agglom.Tree, error)
	Put(ctx context.Context, key uint64, t *agglom.Tree) error
	Close() error
}

// Fingerprint hashes the inputs of a build with xxhash64.
//
// Layout fed to the digest (all integers little-endian):
//
//	rows cols | cell bits row-major | len(linkage) linkage | per label: len label | per extra: len extra
//
// Length prefixes keep ("ab","c") and ("a","bc") apart.
//
// Complexity: O(n²).
func Fingerprint(m matrix.Matrix, linkage string, labels []string, extra ...string) (uint64, error) {
	rows, err := matrix.ToSlices(m)
	if err != nil {
		return 0, fmt.Errorf("store: fingerprint: %w", err)
	}
	h := xxhash.New()
	var buf [8]byte
	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	putString := func(s string) {
		putInt(len(s))
		_, _ = h.WriteString(s)
	}

	putInt(m.Rows())
	putInt(m.Cols())
	for _, row := range rows {
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = h.Write(buf[:])
		}
	}
	putString(linkage)
	putInt(len(labels))
	for _, s := range labels {
		putString(s)
	}
	putInt(len(extra))
	for _, s := range extra {
		putString(s)
	}

	return h.Sum64(), nil
}

// Key renders the record key for a fingerprint.
func Key(fp uint64) string { return fmt.Sprintf("%s%016x", keyPrefix, fp) }

// encode and decode are the value codec shared by all backends.
func encode(t *agglom.Tree) ([]byte, error) {
	if t == nil {
		return nil, errors.New("store: nil tree")
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("store: encode: %w", err)
	}

	return msgpack.Marshal(t)
}

func decode(b []byte) (*agglom.Tree, error) {
	var t agglom.Tree
	if err := msgpack.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("store: decode: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("store: decode: %w", err)
	}

	return &t, nil
}
