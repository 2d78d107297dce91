// Package cache provides the in-process listing cache used by the service
// layer instead of implicit caching interception.
package cache

import (
	gocache "github.com/patrickmn/go-cache"

	"trading/internal/domain/service"
)

// memoryCache implements service.ListingCache on top of patrickmn/go-cache.
// Entries never expire on their own; mutations flush the whole cache.
type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache is the constructor for memoryCache.
func NewMemoryCache() service.ListingCache {
	return &memoryCache{
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get returns the cached value for the key, if present.
func (c *memoryCache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Set stores a value under the key until the next Flush.
func (c *memoryCache) Set(key string, value any) {
	c.store.Set(key, value, gocache.NoExpiration)
}

// Flush drops every cached entry.
func (c *memoryCache) Flush() {
	c.store.Flush()
}
