package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"distrifoods/models"
	"distrifoods/repository"
)

// DefaultCacheTTL is how long a cached dataset stays valid
const DefaultCacheTTL = 30 * time.Minute

// cacheEnvelope is the stored shape of a cache entry: the serialized payload
// plus its write timestamp in milliseconds
type cacheEnvelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// DataCache wraps a KVStore with a time-to-live. Reads and writes never fail
// from the caller's point of view: any storage or serialization problem is
// logged and treated as a cache miss.
type DataCache struct {
	store KVStore
	ttl   time.Duration
	now   func() time.Time
}

// NewDataCache creates a DataCache over the given store
func NewDataCache(store KVStore, ttl time.Duration) *DataCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &DataCache{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Read looks up key and unmarshals the cached payload into dest.
// Returns false when the entry is absent, expired (the stored entry is
// purged) or malformed.
func (c *DataCache) Read(ctx context.Context, key string, dest interface{}) bool {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Printf("⚠️  Cache read failed for %s: %v", key, err)
		return false
	}
	if !ok {
		return false
	}

	var env cacheEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		log.Printf("⚠️  Malformed cache entry for %s: %v", key, err)
		return false
	}

	writtenAt := time.UnixMilli(env.Timestamp)
	if c.now().Sub(writtenAt) > c.ttl {
		if err := c.store.Delete(ctx, key); err != nil {
			log.Printf("⚠️  Failed to purge expired cache entry %s: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(env.Data, dest); err != nil {
		log.Printf("⚠️  Malformed cache payload for %s: %v", key, err)
		return false
	}
	return true
}

// Write stores payload under key with the current timestamp, overwriting any
// prior value. Failures are logged and swallowed; the caller's success path
// never depends on the cache.
func (c *DataCache) Write(ctx context.Context, key string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("⚠️  Failed to serialize cache payload for %s: %v", key, err)
		return
	}

	env := cacheEnvelope{
		Data:      data,
		Timestamp: c.now().UnixMilli(),
	}
	raw, err := json.Marshal(env)
	if err != nil {
		log.Printf("⚠️  Failed to serialize cache entry for %s: %v", key, err)
		return
	}

	if err := c.store.Set(ctx, key, string(raw)); err != nil {
		log.Printf("⚠️  Cache write failed for %s: %v", key, err)
	}
}

// CachedStore serves the read-mostly datasets through the cache. On a miss
// the repository is consulted and the result cached before returning.
// Repository errors propagate unretried; concurrent callers for the same key
// may fetch redundantly, which is fine since the reads are idempotent.
type CachedStore struct {
	cache      *DataCache
	products   repository.ProductRepositoryInterface
	categories repository.CategoryRepositoryInterface
	brands     repository.BrandRepositoryInterface
}

// NewCachedStore creates a CachedStore over the given repositories
func NewCachedStore(
	cache *DataCache,
	products repository.ProductRepositoryInterface,
	categories repository.CategoryRepositoryInterface,
	brands repository.BrandRepositoryInterface,
) *CachedStore {
	return &CachedStore{
		cache:      cache,
		products:   products,
		categories: categories,
		brands:     brands,
	}
}

// GetProducts returns all products, served from cache when fresh
func (s *CachedStore) GetProducts(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if s.cache.Read(ctx, "products", &cached) {
		return cached, nil
	}

	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Write(ctx, "products", products)
	return products, nil
}

// GetCategories returns all categories, served from cache when fresh
func (s *CachedStore) GetCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if s.cache.Read(ctx, "categories", &cached) {
		return cached, nil
	}

	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Write(ctx, "categories", categories)
	return categories, nil
}

// GetBrands returns all brands, served from cache when fresh
func (s *CachedStore) GetBrands(ctx context.Context) ([]models.Brand, error) {
	var cached []models.Brand
	if s.cache.Read(ctx, "brands", &cached) {
		return cached, nil
	}

	brands, err := s.brands.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Write(ctx, "brands", brands)
	return brands, nil
}
