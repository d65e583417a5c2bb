package providers

import "jobdash/internal/structures"

// MetricsCacheProvider reports every job detail lookup as a hit or a miss.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if !ok {
		c.metrics.IncCacheMisses()
		return nil, false
	}
	c.metrics.IncCacheHits()
	return val, true
}

func (c *MetricsCacheProvider) Set(key string, value []byte) { c.inner.Set(key, value) }
func (c *MetricsCacheProvider) Del(key string)               { c.inner.Del(key) }

// NewInstrumentedCacheProvider returns the job detail cache. With the cache
// off every lookup would miss, so the noop cache is not counted.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, off := inner.(*noopCache); off {
		return inner
	}
	return &MetricsCacheProvider{inner: inner, metrics: metrics}
}
