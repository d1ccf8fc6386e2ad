package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "b2b_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "b2b_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// QueryResults observes how many records a catalog query returned.
	QueryResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "b2b_query_results",
			Help:    "Number of records returned per catalog query",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"domain"},
	)
	// QueryRejected counts queries refused at validation.
	QueryRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "b2b_query_rejected_total",
			Help: "Catalog queries rejected before filtering",
		},
		[]string{"domain", "reason"},
	)
	// CacheLookups counts result cache lookups.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "b2b_cache_lookups_total",
			Help: "Query cache lookups by outcome",
		},
		[]string{"domain", "outcome"},
	)
	// RateLimited counts requests rejected by a limiter.
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "b2b_rate_limited_total",
			Help: "Requests rejected by rate limiting",
		},
		[]string{"endpoint"},
	)
)

// ObserveQuery records the size of one query result.
func ObserveQuery(domain string, n int) {
	QueryResults.WithLabelValues(domain).Observe(float64(n))
}

// Rejected counts one refused query.
func Rejected(domain, reason string) {
	QueryRejected.WithLabelValues(domain, reason).Inc()
}

// CacheHit records a cache lookup outcome.
func CacheHit(domain string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	CacheLookups.WithLabelValues(domain, outcome).Inc()
}

// Handler returns the Prometheus HTTP handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
