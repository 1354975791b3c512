// Package metrics exposes Prometheus instrumentation for the web front end
// and for calls to the upstream league API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPRequests counts page and API requests by route template and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "leaguehub_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "route", "status"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "leaguehub_http_request_duration_seconds",
	Help:    "HTTP request latency by route.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

// UpstreamRequests counts calls to the league API by status code.
var UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "leaguehub_upstream_requests_total",
	Help: "Requests sent to the league data API.",
}, []string{"code", "method"})

var UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "leaguehub_upstream_request_duration_seconds",
	Help:    "Latency of requests to the league data API.",
	Buckets: prometheus.DefBuckets,
}, []string{"code", "method"})

// DigestsSent counts scheduled Telegram digests by kind and outcome. Replies to
// chat commands are not counted.
var DigestsSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "leaguehub_digests_total",
	Help: "Telegram digests by kind and result.",
}, []string{"kind", "result"})

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// InstrumentTransport wraps next so every upstream call is counted and timed.
func InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(UpstreamRequests,
		promhttp.InstrumentRoundTripperDuration(UpstreamDuration, next))
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
