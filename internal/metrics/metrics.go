// Package metrics collects and exposes Prometheus metrics for the HTTP
// surface: request counts and latencies per route, plus authorization
// denials per role.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taskdash/taskdash/internal/server/middleware"
)

type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	policyDenials   *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdash_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taskdash_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		policyDenials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdash_policy_denials_total",
			Help: "Requests refused by role-based access policy.",
		}, []string{"role", "method", "path"}),
	}

	reg.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.policyDenials,
	)

	return c
}

// Middleware records request count and latency. The route label uses the chi
// route pattern, not the raw path, to keep cardinality bounded.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		path := routePattern(r)
		c.requestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(sw.status)).Inc()
		c.requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// RecordPolicyDenial counts a role-based refusal.
func (c *Collector) RecordPolicyDenial(role, method, path string) {
	c.policyDenials.WithLabelValues(role, method, path).Inc()
}

// DenialMiddleware counts 403 responses against the caller's role. It must
// sit after authentication so the caller identity is already on the request
// context.
func (c *Collector) DenialMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		if sw.status != http.StatusForbidden {
			return
		}
		role := "unknown"
		if caller, ok := middleware.CallerFromContext(r.Context()); ok {
			role = string(caller.Role)
		}
		c.RecordPolicyDenial(role, r.Method, routePattern(r))
	})
}

// Handler returns the Prometheus scrape handler for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
