package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/route-search/route-search-and-aggregation-system/internal/infrastructure/timeutil"
)

// MemoryStore is an in-process Store backed by a map with per-entry
// deadlines. Expiry is lazy: entries past their deadline are dropped when
// they are next touched. Time comes from an injected Clock so TTL behavior
// is deterministic in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   timeutil.Clock
}

type memoryEntry struct {
	value    []byte
	deadline time.Time
}

// NewMemoryStore creates a MemoryStore using the given clock.
// A nil clock falls back to the real system clock.
func NewMemoryStore(clock timeutil.Clock) *MemoryStore {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		clock:   clock,
	}
}

// Get implements Store.Get.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if s.expired(entry) {
		delete(s.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set implements Store.Set. A TTL <= 0 is a no-op.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		value:    value,
		deadline: s.clock.Now().Add(ttl),
	}
	return nil
}

// GetBatch implements Store.GetBatch; misses are omitted from the result.
func (s *MemoryStore) GetBatch(_ context.Context, keys []string) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string][]byte, len(keys))
	for _, key := range keys {
		entry, ok := s.entries[key]
		if !ok {
			continue
		}
		if s.expired(entry) {
			delete(s.entries, key)
			continue
		}
		result[key] = entry.value
	}
	return result, nil
}

// SetBatch implements Store.SetBatch. A TTL <= 0 is a no-op.
func (s *MemoryStore) SetBatch(_ context.Context, entries map[string][]byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.clock.Now().Add(ttl)
	for key, value := range entries {
		s.entries[key] = memoryEntry{value: value, deadline: deadline}
	}
	return nil
}

// ScanPrefix implements Store.ScanPrefix.
func (s *MemoryStore) ScanPrefix(_ context.Context, prefix string) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string][]byte)
	for key, entry := range s.entries {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if s.expired(entry) {
			delete(s.entries, key)
			continue
		}
		result[key] = entry.value
	}
	return result, nil
}

// Len returns the number of live entries. Intended for tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, entry := range s.entries {
		if !s.expired(entry) {
			n++
		}
	}
	return n
}

func (s *MemoryStore) expired(entry memoryEntry) bool {
	return !entry.deadline.After(s.clock.Now())
}

// Ensure MemoryStore implements Store at compile time.
var _ Store = (*MemoryStore)(nil)
