package cache

import (
	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements in-process caching of raw tables
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache whose entries live for the whole run
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves a table from the cache
func (c *MemoryCache) Get(key string) (*Table, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(*Table), true
	}
	return nil, false
}

// Set stores a table in the cache
func (c *MemoryCache) Set(key string, table *Table) {
	c.cache.Set(key, table, gocache.NoExpiration)
}

