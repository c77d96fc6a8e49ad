package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distrifoods/models"
)

// fakeClock lets tests move a DataCache through time
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestCache(ttl time.Duration) (*DataCache, *MemoryKVStore, *fakeClock) {
	store := NewMemoryKVStore()
	clock := &fakeClock{t: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	cache := NewDataCache(store, ttl)
	cache.now = clock.Now
	return cache, store, clock
}

func TestDataCacheRoundTrip(t *testing.T) {
	cache, _, _ := newTestCache(30 * time.Minute)
	ctx := context.Background()

	written := []models.Brand{{ID: "b-1", Name: "Acme"}}
	cache.Write(ctx, "brands", written)

	var read []models.Brand
	require.True(t, cache.Read(ctx, "brands", &read))
	assert.Equal(t, written, read)
}

func TestDataCacheMissOnAbsentKey(t *testing.T) {
	cache, _, _ := newTestCache(30 * time.Minute)

	var dest []models.Brand
	assert.False(t, cache.Read(context.Background(), "nothing", &dest))
}

func TestDataCacheExpiryPurgesEntry(t *testing.T) {
	cache, store, clock := newTestCache(30 * time.Minute)
	ctx := context.Background()

	cache.Write(ctx, "brands", []models.Brand{{ID: "b-1"}})

	// Just inside the TTL the entry is still served
	clock.Advance(29 * time.Minute)
	var dest []models.Brand
	assert.True(t, cache.Read(ctx, "brands", &dest))

	// Past the TTL the read misses and the stale entry is deleted
	clock.Advance(2 * time.Minute)
	assert.False(t, cache.Read(ctx, "brands", &dest))

	_, ok, err := store.Get(ctx, "brands")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry should have been purged")
}

func TestDataCacheMalformedEntryIsAMiss(t *testing.T) {
	cache, store, _ := newTestCache(30 * time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "brands", "not json at all"))

	var dest []models.Brand
	assert.False(t, cache.Read(ctx, "brands", &dest))
}

func TestDataCacheEnvelopeShape(t *testing.T) {
	cache, store, clock := newTestCache(30 * time.Minute)
	ctx := context.Background()

	cache.Write(ctx, "brands", []models.Brand{{ID: "b-1"}})

	raw, ok, err := store.Get(ctx, "brands")
	require.NoError(t, err)
	require.True(t, ok)

	var env struct {
		Data      json.RawMessage `json:"data"`
		Timestamp int64           `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	assert.Equal(t, clock.Now().UnixMilli(), env.Timestamp)
	assert.NotEmpty(t, env.Data)
}

// stub repositories counting how often they are hit

type stubProductRepo struct {
	products []models.Product
	err      error
	calls    int
}

func (r *stubProductRepo) GetAll(ctx context.Context) ([]models.Product, error) {
	r.calls++
	return r.products, r.err
}

func (r *stubProductRepo) GetBestSellers(ctx context.Context) ([]models.Product, error) {
	return r.products, r.err
}

func (r *stubProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			return &r.products[i], nil
		}
	}
	return nil, nil
}

type stubCategoryRepo struct {
	categories []models.Category
	calls      int
}

func (r *stubCategoryRepo) GetAll(ctx context.Context) ([]models.Category, error) {
	r.calls++
	return r.categories, nil
}

func (r *stubCategoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	for i := range r.categories {
		if r.categories[i].ID == id {
			return &r.categories[i], nil
		}
	}
	return nil, nil
}

type stubBrandRepo struct {
	brands []models.Brand
	calls  int
}

func (r *stubBrandRepo) GetAll(ctx context.Context) ([]models.Brand, error) {
	r.calls++
	return r.brands, nil
}

func TestCachedStoreFetchesOnceWithinTTL(t *testing.T) {
	cache, _, _ := newTestCache(30 * time.Minute)
	products := &stubProductRepo{products: []models.Product{{ID: "p-1", Title: "Cola"}}}
	store := NewCachedStore(cache, products, &stubCategoryRepo{}, &stubBrandRepo{})
	ctx := context.Background()

	first, err := store.GetProducts(ctx)
	require.NoError(t, err)
	second, err := store.GetProducts(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, products.calls, "second read should come from cache")
}

func TestCachedStoreRefetchesAfterExpiry(t *testing.T) {
	cache, _, clock := newTestCache(30 * time.Minute)
	products := &stubProductRepo{products: []models.Product{{ID: "p-1"}}}
	store := NewCachedStore(cache, products, &stubCategoryRepo{}, &stubBrandRepo{})
	ctx := context.Background()

	_, err := store.GetProducts(ctx)
	require.NoError(t, err)

	clock.Advance(31 * time.Minute)

	_, err = store.GetProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, products.calls)
}

func TestCachedStorePropagatesRepositoryError(t *testing.T) {
	cache, _, _ := newTestCache(30 * time.Minute)
	products := &stubProductRepo{err: fmt.Errorf("connection refused")}
	store := NewCachedStore(cache, products, &stubCategoryRepo{}, &stubBrandRepo{})

	_, err := store.GetProducts(context.Background())
	assert.Error(t, err)
}

func TestCachedStoreKeysAreIndependent(t *testing.T) {
	cache, _, _ := newTestCache(30 * time.Minute)
	categories := &stubCategoryRepo{categories: []models.Category{{ID: "c-1", Name: "Beverages"}}}
	brands := &stubBrandRepo{brands: []models.Brand{{ID: "b-1", Name: "Acme"}}}
	store := NewCachedStore(cache, &stubProductRepo{}, categories, brands)
	ctx := context.Background()

	gotCategories, err := store.GetCategories(ctx)
	require.NoError(t, err)
	gotBrands, err := store.GetBrands(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Beverages", gotCategories[0].Name)
	assert.Equal(t, "Acme", gotBrands[0].Name)
	assert.Equal(t, 1, categories.calls)
	assert.Equal(t, 1, brands.calls)
}
