// Package store caches built trees keyed by an input fingerprint.
//
// A fingerprint covers everything that determines the result of
// agglom.Build: the matrix cells, the linkage name, the labels and any
// extra option strings the caller folds in (outgroup, clamping). Two runs
// with equal fingerprints yield identical trees, so a hit can skip the
// O(n³) agglomeration.
//
// Backends:
//   - Open     — badger/v4 on disk (or in memory), msgpack values under "tree/<hex>".
//   - NewMemory — map-backed, for tests and one-shot runs.
//   - WithLRU  — decorates any Store with a bounded in-process cache.
//
// Trees returned by a Store may be shared with the cache; treat them as read-only.
package store
