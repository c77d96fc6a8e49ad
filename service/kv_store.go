package service

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// KVStore is the persistent key-value store behind the data cache.
// Implementations must report "absent" through the bool, not through an error.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// RedisKVStore is a KVStore backed by Redis
type RedisKVStore struct {
	client *redis.Client
}

// NewRedisKVStore creates a RedisKVStore connected to the given address
func NewRedisKVStore(addr string) *RedisKVStore {
	return &RedisKVStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Ensure RedisKVStore implements KVStore
var _ KVStore = (*RedisKVStore)(nil)

func (s *RedisKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisKVStore) Set(ctx context.Context, key string, value string) error {
	// Expiry is handled by the cache layer's timestamp envelope, not by Redis.
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisKVStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Ping checks the Redis connection
func (s *RedisKVStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// MemoryKVStore is an in-process KVStore used when no Redis address is
// configured, and by tests
type MemoryKVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKVStore creates an empty MemoryKVStore
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{data: make(map[string]string)}
}

// Ensure MemoryKVStore implements KVStore
var _ KVStore = (*MemoryKVStore)(nil)

func (s *MemoryKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok, nil
}

func (s *MemoryKVStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryKVStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
