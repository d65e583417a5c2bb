package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"jobdash/internal/structures"
)

// local mock logger to avoid import cycle with testutil
type cacheTestLogger struct{}

type countingLogger struct {
	cacheTestLogger
	debugs int
}

func (m *countingLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) { m.debugs++ }

func (m *cacheTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Close()                                        {}

func cacheConfig(enabled bool, size int, ttl time.Duration) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{
			Enabled: enabled,
			Size:    size,
			TTL:     ttl,
		},
	}
}

func TestCacheProvider_DisabledReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(false, 10, time.Minute), &cacheTestLogger{})
	_, ok := c.Get("any")
	assert.False(t, ok)
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_ZeroSizeReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 0, time.Minute), &cacheTestLogger{})
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_EnabledReturnsCacheProvider(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Minute), &cacheTestLogger{})
	assert.IsType(t, &CacheProvider{}, c)
}

func TestCacheProvider_SetGetDel(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Minute), &cacheTestLogger{})

	c.Set("job:1", []byte(`{"id":1}`))
	val, ok := c.Get("job:1")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"id":1}`), val)

	c.Del("job:1")
	_, ok = c.Get("job:1")
	assert.False(t, ok)
}

func TestCacheProvider_Miss(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Minute), &cacheTestLogger{})
	val, ok := c.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestCacheProvider_SubSecondTTLClampsToOne(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 0), &cacheTestLogger{}).(*CacheProvider)
	assert.Equal(t, 1, c.ttl)
}

func TestCacheProvider_OversizedPostingIsSkipped(t *testing.T) {
	logger := &countingLogger{}
	c := NewCacheProvider(cacheConfig(true, 1, time.Minute), logger)

	c.Set("job:9", make([]byte, 4<<10))
	_, ok := c.Get("job:9")
	assert.False(t, ok)
	assert.Equal(t, 1, logger.debugs)
}
