package providers

import (
	"net/http"
	"strings"
	"time"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// MetricsRoundTripper records count and latency of every outbound request.
// Failed round trips are counted with status 0.
func MetricsRoundTripper(metrics MetricsProviderInterface, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(r)

		route := r.Method + " " + RouteLabel(r.URL.Path)
		status := 0
		if err == nil {
			status = resp.StatusCode
		}
		metrics.IncRequestsTotal(route, status)
		metrics.ObserveRequestDuration(route, time.Since(start))
		return resp, err
	})
}

// RouteLabel collapses numeric path segments so ids do not explode label cardinality.
func RouteLabel(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p != "" && strings.Trim(p, "0123456789") == "" {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}
