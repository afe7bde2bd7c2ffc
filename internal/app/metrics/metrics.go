// Package metrics exposes the application's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "appcore",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "appcore",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "appcore",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	cartOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "appcore",
			Subsystem: "cart",
			Name:      "operations_total",
			Help:      "Total number of cart mutations.",
		},
		[]string{"op"},
	)

	catalogRefreshes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "appcore",
			Subsystem: "catalog",
			Name:      "refreshes_total",
			Help:      "Total number of catalog snapshot refreshes.",
		},
	)

	loginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "appcore",
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Total number of login attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(httpInFlight, httpRequests, httpDuration, cartOps, catalogRefreshes, loginAttempts)
}

// Handler serves the registry over HTTP.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records one handled request.
func ObserveHTTPRequest(method, path string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// HTTPInFlight tracks a request entering (+1) or leaving (-1) the handler.
func HTTPInFlight(delta float64) {
	httpInFlight.Add(delta)
}

// CartOperation counts one cart mutation ("add", "increase", "decrease",
// "clear").
func CartOperation(op string) {
	cartOps.WithLabelValues(op).Inc()
}

// CatalogRefresh counts one catalog snapshot refresh.
func CatalogRefresh() {
	catalogRefreshes.Inc()
}

// LoginAttempt counts one login attempt ("success", "failure", "throttled").
func LoginAttempt(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()
}
