package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/ganorabricks/figfinder/internal/domain"
)

// CacheSchemaVersion is the current version of the in-memory cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedMinifig wraps a recipe with version metadata for cache invalidation
type cachedMinifig struct {
	Version  string          `json:"version"`
	Fig      *domain.Minifig `json:"fig"`
	CachedAt time.Time       `json:"cached_at"`
}

// cachedGuide wraps a price guide with version metadata. The guide pointer
// may be nil: a negative entry recording that BrickLink has no price data,
// so repeated runs do not re-scrape known-empty listings.
type cachedGuide struct {
	Version  string             `json:"version"`
	Guide    *domain.PriceGuide `json:"guide"`
	CachedAt time.Time          `json:"cached_at"`
}

// memoryCache is the in-process LRU layer in front of the database cache,
// with time-based expiration and version-based invalidation.
type memoryCache struct {
	figs   *expirable.LRU[string, *cachedMinifig]
	guides *expirable.LRU[string, *cachedGuide]
}

func newMemoryCache(size int, ttl time.Duration) *memoryCache {
	return &memoryCache{
		figs:   expirable.NewLRU[string, *cachedMinifig](size, nil, ttl),
		guides: expirable.NewLRU[string, *cachedGuide](size, nil, ttl),
	}
}

// GetMinifig returns (fig, true) when cached with a matching schema
// version. Entries with a stale version are removed on access.
func (c *memoryCache) GetMinifig(minifigID string) (*domain.Minifig, bool) {
	entry, found := c.figs.Get(minifigID)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.figs.Remove(minifigID)
		return nil, false
	}
	return entry.Fig, true
}

func (c *memoryCache) SetMinifig(fig *domain.Minifig) {
	c.figs.Add(fig.ID, &cachedMinifig{
		Version:  CacheSchemaVersion,
		Fig:      fig,
		CachedAt: time.Now(),
	})
}

// GetGuide returns (guide, true) when cached, including negative entries
// where the guide itself is nil.
func (c *memoryCache) GetGuide(minifigID string) (*domain.PriceGuide, bool) {
	entry, found := c.guides.Get(minifigID)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.guides.Remove(minifigID)
		return nil, false
	}
	return entry.Guide, true
}

func (c *memoryCache) SetGuide(minifigID string, guide *domain.PriceGuide) {
	c.guides.Add(minifigID, &cachedGuide{
		Version:  CacheSchemaVersion,
		Guide:    guide,
		CachedAt: time.Now(),
	})
}

// Invalidate removes one minifig's entries from both caches.
func (c *memoryCache) Invalidate(minifigID string) {
	c.figs.Remove(minifigID)
	c.guides.Remove(minifigID)
}

// Clear removes all entries.
func (c *memoryCache) Clear() {
	c.figs.Purge()
	c.guides.Purge()
}
