package providers

import (
	"time"

	"github.com/coocood/freecache"
	"jobdash/internal/structures"
)

// CacheProviderInterface holds encoded job postings by key.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Del(key string)
}

// CacheProvider keeps postings in freecache. An entry larger than 1/1024 of
// the cache is not stored.
type CacheProvider struct {
	cache  *freecache.Cache
	ttl    int
	logger Logger
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	size := conf.Cache.Size << 20
	if !conf.Cache.Enabled || size <= 0 {
		logger.Infof(TypeJobs, "Job detail cache off")
		return &noopCache{}
	}

	ttl := max(int(conf.Cache.TTL/time.Second), 1)
	logger.Infof(TypeJobs, "Job detail cache: %dMB, entries kept %ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		cache:  freecache.NewCache(size),
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	return val, err == nil
}

func (c *CacheProvider) Set(key string, value []byte) {
	if err := c.cache.Set([]byte(key), value, c.ttl); err != nil {
		c.logger.Debugf(TypeJobs, "Not caching %s (%d bytes): %s", key, len(value), err)
	}
}

func (c *CacheProvider) Del(key string) {
	c.cache.Del([]byte(key))
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
func (n *noopCache) Del(_ string)                {}
