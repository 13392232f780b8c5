// Package cache provides the shared key/value store used to serve repeated
// searches without redundant upstream calls. The core depends only on the
// Store interface; backings must not leak eviction or clustering behavior
// beyond get/set/scan/TTL semantics.
package cache

import (
	"context"
	"time"
)

// Store is a minimal key/value cache with per-entry TTL, batch operations,
// and prefix-scan retrieval. Values are raw bytes; callers own serialization.
//
// Semantics every backing must honor:
//   - A TTL <= 0 means "do not store" — the write is a no-op, never an error.
//   - A missing or expired entry is a miss, not an error: Get reports
//     found=false, batch and scan results simply omit the key.
//   - Implementations must be safe for concurrent readers and writers.
type Store interface {
	// Get returns the value for key, or found=false on a miss.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key for the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// GetBatch returns the values for the given keys; misses are omitted.
	GetBatch(ctx context.Context, keys []string) (map[string][]byte, error)

	// SetBatch stores every entry with the same TTL.
	SetBatch(ctx context.Context, entries map[string][]byte, ttl time.Duration) error

	// ScanPrefix returns every live entry whose key starts with prefix.
	ScanPrefix(ctx context.Context, prefix string) (map[string][]byte, error)
}
