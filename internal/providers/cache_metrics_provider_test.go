package providers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cacheMetricsTestMetrics struct {
	hits   int
	misses int
}

func (m *cacheMetricsTestMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *cacheMetricsTestMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *cacheMetricsTestMetrics) IncCacheHits()                                    { m.hits++ }
func (m *cacheMetricsTestMetrics) IncCacheMisses()                                  { m.misses++ }
func (m *cacheMetricsTestMetrics) IncRollbacks(_ string)                            {}
func (m *cacheMetricsTestMetrics) IncStaleLoads()                                   {}
func (m *cacheMetricsTestMetrics) SetJobsTotal(_ int)                               {}
func (m *cacheMetricsTestMetrics) Handler() http.Handler                            { return http.NotFoundHandler() }

type cacheMetricsTestInner struct {
	data map[string][]byte
}

func (c *cacheMetricsTestInner) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *cacheMetricsTestInner) Set(key string, value []byte) {
	c.data[key] = value
}
func (c *cacheMetricsTestInner) Del(key string) {
	delete(c.data, key)
}

func TestMetricsCacheProvider_CountsHitsAndMisses(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{"job:1": []byte(`{"id":1}`)}}
	metrics := &cacheMetricsTestMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	cache.Get("job:1")
	cache.Get("job:2")
	cache.Get("job:1")

	assert.Equal(t, 2, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestMetricsCacheProvider_SetAndDelDelegate(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	metrics := &cacheMetricsTestMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	cache.Set("job:7", []byte("x"))
	_, ok := inner.Get("job:7")
	require.True(t, ok)

	cache.Del("job:7")
	_, ok = inner.Get("job:7")
	assert.False(t, ok)
	assert.Zero(t, metrics.hits+metrics.misses, "only Get is counted")
}

func TestNewInstrumentedCacheProvider_DisabledIsUnwrapped(t *testing.T) {
	metrics := &cacheMetricsTestMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(false, 1, time.Minute), &cacheTestLogger{}, metrics)

	assert.IsType(t, &noopCache{}, c)
	c.Get("job:1")
	assert.Zero(t, metrics.misses)
}

func TestNewInstrumentedCacheProvider_EnabledWrapsFreecache(t *testing.T) {
	metrics := &cacheMetricsTestMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(true, 1, time.Minute), &cacheTestLogger{}, metrics)
	require.IsType(t, &MetricsCacheProvider{}, c)

	c.Set("job:3", []byte("payload"))
	val, ok := c.Get("job:3")
	assert.True(t, ok)
	assert.Equal(t, []byte("payload"), val)
	assert.Equal(t, 1, metrics.hits)
}
