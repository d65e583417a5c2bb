package testutil

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"jobdash/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockMetrics implements providers.MetricsProviderInterface with counters.
type MockMetrics struct {
	mu         sync.Mutex
	Requests   map[string]int
	CacheHits  int
	CacheMiss  int
	Rollbacks  map[string]int
	StaleLoads int
	JobsTotal  int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Requests: make(map[string]int), Rollbacks: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(route string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[route]++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMiss++
}
func (m *MockMetrics) IncRollbacks(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rollbacks[op]++
}
func (m *MockMetrics) IncStaleLoads() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StaleLoads++
}
func (m *MockMetrics) SetJobsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.JobsTotal = count
}
func (m *MockMetrics) Handler() http.Handler { return http.NotFoundHandler() }

// StaticCredentials implements transport.CredentialSource.
type StaticCredentials struct {
	mu    sync.Mutex
	Token string
}

func (s *StaticCredentials) AccessToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Token, s.Token != ""
}

func (s *StaticCredentials) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Token = token
}

// ErrMockStorage is returned by MemoryStorage when FailWrites is set.
var ErrMockStorage = errors.New("mock storage failure")

// MemoryStorage implements storage.KeyValueStorage in memory.
type MemoryStorage struct {
	mu         sync.Mutex
	Data       map[string][]byte
	FailWrites bool
	NotFound   error
}

func NewMemoryStorage(notFound error) *MemoryStorage {
	return &MemoryStorage{Data: make(map[string][]byte), NotFound: notFound}
}

func (m *MemoryStorage) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	if !ok {
		return nil, m.NotFound
	}
	return v, nil
}

func (m *MemoryStorage) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrMockStorage
	}
	m.Data[key] = value
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrMockStorage
	}
	delete(m.Data, key)
	return nil
}

// MockCompressor implements storage.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
