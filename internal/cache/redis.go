package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
)

// RedisStore is a Store backed by a shared Redis instance, letting multiple
// service replicas serve each other's cached searches. Keys are namespaced so
// the service can share a Redis database with other tenants.
type RedisStore struct {
	client    redis.UniversalClient
	namespace string
}

// RedisConfig holds the connection settings for the Redis backing.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	Namespace string
}

// NewRedisStore creates a RedisStore with its own client for the given config.
func NewRedisStore(cfg RedisConfig) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisStoreWithClient(client, cfg.Namespace)
}

// NewRedisStoreWithClient creates a RedisStore on an existing client.
func NewRedisStoreWithClient(client redis.UniversalClient, namespace string) *RedisStore {
	return &RedisStore{
		client:    client,
		namespace: namespace,
	}
}

// Ping verifies connectivity. Called once at startup so a misconfigured
// address fails fast instead of degrading every request.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w: %w", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Get implements Store.Get.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.namespaced(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w: %w", key, domain.ErrCacheUnavailable, err)
	}
	return value, true, nil
}

// Set implements Store.Set. A TTL <= 0 is a no-op.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.namespaced(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w: %w", key, domain.ErrCacheUnavailable, err)
	}
	return nil
}

// GetBatch implements Store.GetBatch using a single MGET; misses are omitted.
func (s *RedisStore) GetBatch(ctx context.Context, keys []string) (map[string][]byte, error) {
	if len(keys) == 0 {
		return map[string][]byte{}, nil
	}

	namespaced := make([]string, len(keys))
	for i, key := range keys {
		namespaced[i] = s.namespaced(key)
	}

	values, err := s.client.MGet(ctx, namespaced...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w: %w", domain.ErrCacheUnavailable, err)
	}

	result := make(map[string][]byte, len(keys))
	for i, value := range values {
		if value == nil {
			continue
		}
		// go-redis returns MGET values as strings
		if str, ok := value.(string); ok {
			result[keys[i]] = []byte(str)
		}
	}
	return result, nil
}

// SetBatch implements Store.SetBatch. MSET has no per-key TTL, so writes go
// through a pipeline of SETs sharing one round trip. A TTL <= 0 is a no-op.
func (s *RedisStore) SetBatch(ctx context.Context, entries map[string][]byte, ttl time.Duration) error {
	if ttl <= 0 || len(entries) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for key, value := range entries {
		pipe.Set(ctx, s.namespaced(key), value, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline set: %w: %w", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// ScanPrefix implements Store.ScanPrefix using SCAN MATCH, never KEYS.
func (s *RedisStore) ScanPrefix(ctx context.Context, prefix string) (map[string][]byte, error) {
	var matched []string
	iter := s.client.Scan(ctx, 0, s.namespaced(prefix)+"*", 0).Iterator()
	for iter.Next(ctx) {
		matched = append(matched, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan %q: %w: %w", prefix, domain.ErrCacheUnavailable, err)
	}
	if len(matched) == 0 {
		return map[string][]byte{}, nil
	}

	values, err := s.client.MGet(ctx, matched...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget after scan: %w: %w", domain.ErrCacheUnavailable, err)
	}

	result := make(map[string][]byte, len(matched))
	for i, value := range values {
		if value == nil {
			// Key expired between SCAN and MGET; treat as a miss.
			continue
		}
		if str, ok := value.(string); ok {
			result[s.stripNamespace(matched[i])] = []byte(str)
		}
	}
	return result, nil
}

func (s *RedisStore) namespaced(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}

func (s *RedisStore) stripNamespace(key string) string {
	if s.namespace == "" {
		return key
	}
	return key[len(s.namespace)+1:]
}

// Ensure RedisStore implements Store at compile time.
var _ Store = (*RedisStore)(nil)
