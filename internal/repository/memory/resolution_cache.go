package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ResolutionCache is a read-through cache for normalized feature name ->
// feature id lookups. Names never remap while a feature exists, so a short
// TTL is only needed to bound staleness after deletes from other replicas.
type ResolutionCache struct {
	cache *cache.Cache
}

func NewResolutionCache() *ResolutionCache {
	// Default expiration of 5 minutes, purge sweep every 10 minutes
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &ResolutionCache{
		cache: c,
	}
}

func (r *ResolutionCache) Put(name string, id uuid.UUID) {
	r.cache.Set(name, id, cache.DefaultExpiration)
}

func (r *ResolutionCache) Get(name string) (uuid.UUID, bool) {
	if x, found := r.cache.Get(name); found {
		return x.(uuid.UUID), true
	}
	return uuid.Nil, false
}

func (r *ResolutionCache) Forget(name string) {
	r.cache.Delete(name)
}
