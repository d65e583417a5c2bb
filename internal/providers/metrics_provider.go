package providers

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"jobdash/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(route string, status int)
	ObserveRequestDuration(route string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncRollbacks(op string)
	IncStaleLoads()
	SetJobsTotal(count int)
	Handler() http.Handler
}

type MetricsProvider struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	rollbacks       *prometheus.CounterVec
	staleLoads      prometheus.Counter
	jobsTotal       prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(route string, status int) {
	m.requestsTotal.WithLabelValues(route, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(route string, duration time.Duration) {
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncRollbacks(op string) {
	m.rollbacks.WithLabelValues(op).Inc()
}

func (m *MetricsProvider) IncStaleLoads() {
	m.staleLoads.Inc()
}

func (m *MetricsProvider) SetJobsTotal(count int) {
	m.jobsTotal.Set(float64(count))
}

func (m *MetricsProvider) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func httpStatusBucket(code int) string {
	switch {
	case code <= 0:
		return "error"
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &MetricsProvider{
		registry: reg,

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jobdash_api_requests_total",
			Help: "Total number of API requests issued",
		}, []string{"route", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobdash_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "jobdash_cache_hits_total",
			Help: "Total number of job detail cache hits",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "jobdash_cache_misses_total",
			Help: "Total number of job detail cache misses",
		}),

		rollbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jobdash_optimistic_rollbacks_total",
			Help: "Optimistic flag changes reverted after a failed mutation",
		}, []string{"op"}),

		staleLoads: factory.NewCounter(prometheus.CounterOpts{
			Name: "jobdash_stale_loads_total",
			Help: "Job list responses discarded because a newer load was applied",
		}),

		jobsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "jobdash_jobs_visible",
			Help: "Number of jobs in the visible collection",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncRollbacks(_ string)                            {}
func (n *noopMetrics) IncStaleLoads()                                   {}
func (n *noopMetrics) SetJobsTotal(_ int)                               {}
func (n *noopMetrics) Handler() http.Handler                            { return http.NotFoundHandler() }
