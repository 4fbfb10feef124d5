package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/katalvlaran/agglom/agglom"
)

// Badger is a Store on top of a badger/v4 database.
type Badger struct {
	db *badger.DB
}

// Option adjusts badger options before Open.
type Option func(*badger.Options)

// WithInMemory keeps the database in RAM; dir is ignored.
func WithInMemory() Option {
	return func(o *badger.Options) {
		o.Dir, o.ValueDir = "", ""
		o.InMemory = true
	}
}

// WithLogger routes badger's internal logging; a *zap.SugaredLogger fits.
// By default badger logging is silenced.
func WithLogger(l badger.Logger) Option {
	return func(o *badger.Options) { o.Logger = l }
}

// WithSyncWrites fsyncs every write.
func WithSyncWrites(on bool) Option {
	return func(o *badger.Options) { o.SyncWrites = on }
}

// Open opens (creating if needed) a badger database in dir.
func Open(dir string, opts ...Option) (*Badger, error) {
	bo := badger.DefaultOptions(dir).WithLogger(nil)
	for _, fn := range opts {
		fn(&bo)
	}
	db, err := badger.Open(bo)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", dir, err)
	}

	return &Badger{db: db}, nil
}

// Get reads and decodes the tree under key.
func (s *Badger) Get(ctx context.Context, key uint64) (*agglom.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(Key(key)))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)

		return err
	})
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, ErrNotFound
	case errors.Is(err, badger.ErrDBClosed):
		return nil, ErrClosed
	case err != nil:
		return nil, fmt.Errorf("store: get %s: %w", Key(key), err)
	}

	return decode(val)
}

// Put encodes t and writes it under key.
func (s *Badger) Put(ctx context.Context, key uint64, t *agglom.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	val, err := encode(t)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(Key(key)), val)
	})
	if errors.Is(err, badger.ErrDBClosed) {
		return ErrClosed
	}
	if err != nil {
		return fmt.Errorf("store: put %s: %w", Key(key), err)
	}

	return nil
}

// Keys lists the fingerprints currently stored, in key order.
func (s *Badger) Keys(ctx context.Context) ([]uint64, error) {
	var out []uint64
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: false, Prefix: []byte(keyPrefix)})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var fp uint64
			if _, err := fmt.Sscanf(string(it.Item().Key()[len(keyPrefix):]), "%x", &fp); err != nil {
				return fmt.Errorf("store: bad key %q: %w", it.Item().Key(), err)
			}
			out = append(out, fp)
		}

		return nil
	})

	return out, err
}

// Close flushes and closes the database.
func (s *Badger) Close() error { return s.db.Close() }
