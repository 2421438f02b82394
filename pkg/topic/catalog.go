package topic

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Topic is a known subject associated with a source key (e.g. a file-id
// prefix supplied by a client that has processed the material before).
type Topic struct {
	Key     string
	Title   string
	Summary string
}

// Catalog looks up a known topic for a source key. Implementations are
// injected; production code never bakes sample data into the lookup path.
type Catalog interface {
	Lookup(key string) (*Topic, bool)
}

// MemoryCatalog is a TTL'd in-memory Catalog. Entries are seeded by the
// caller (fixtures in tests, an external feed in deployment).
type MemoryCatalog struct {
	cache *cache.Cache
}

var _ Catalog = &MemoryCatalog{}

func NewMemoryCatalog(ttl time.Duration) *MemoryCatalog {
	return &MemoryCatalog{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (c *MemoryCatalog) Put(t Topic) {
	c.cache.Set(t.Key, t, cache.DefaultExpiration)
}

func (c *MemoryCatalog) Lookup(key string) (*Topic, bool) {
	x, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	t := x.(Topic)
	return &t, true
}
