package main

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics
var (
	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reqtrace_requests_total",
			Help: "Total number of requests processed",
		},
		[]string{"method", "path", "status"},
	)
	requestLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reqtrace_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 15), // ~10ms to ~163s
		},
	)
)

// registerPrometheusMetrics registers the collectors with the default registry.
func registerPrometheusMetrics() {
	prometheus.MustRegister(requestTotal, requestLatency)
}

// metricsMiddleware records Prometheus request metrics. Metrics stay
// out of the logging interceptor, which only writes text lines.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		atomic.AddUint64(&requestCounter, 1)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		requestLatency.Observe(time.Since(start).Seconds())
		requestTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rw.statusCode)).Inc()
	})
}
