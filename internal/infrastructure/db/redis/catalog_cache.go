package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marketbay/storefront-api/internal/core/domain"
)

const (
	catalogKey = "catalog:products"
	catalogTTL = 5 * time.Minute
)

// CatalogCache caches the full product listing in Redis. Cache failures are
// swallowed: a broken cache degrades to a store read, never to an error.
type CatalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// GetProducts returns the cached listing and whether it was present.
func (c *CatalogCache) GetProducts(ctx context.Context) ([]domain.Product, bool) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		// redis.Nil is a plain miss; any other failure degrades to one.
		return nil, false
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProducts stores the listing with a short TTL.
func (c *CatalogCache) SetProducts(ctx context.Context, products []domain.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, catalogKey, raw, catalogTTL).Err()
}

// Invalidate drops the cached listing after a catalog write.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	_ = c.client.Del(ctx, catalogKey).Err()
}
