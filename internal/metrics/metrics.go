package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_upstream_requests_total",
		Help: "Subgraph queries by query name and outcome",
	}, []string{"query", "outcome"})

	upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "marketplace_upstream_request_duration_seconds",
		Help:    "Subgraph query latency",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"query"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_http_requests_total",
		Help: "API requests by route and status code",
	}, []string{"route", "status"})
)

// ObserveUpstream records one subgraph query.
func ObserveUpstream(query string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	upstreamRequests.WithLabelValues(query, outcome).Inc()
	upstreamLatency.WithLabelValues(query).Observe(elapsed.Seconds())
}

// ObserveHTTP records one served API request.
func ObserveHTTP(route, status string) {
	httpRequests.WithLabelValues(route, status).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
