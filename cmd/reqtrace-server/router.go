package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reqtrace/reqtrace"
)

// setupRoutes configures all HTTP routes and middleware for the server.
func setupRoutes() *mux.Router {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(corsMiddleware)
	if rateLimiter != nil {
		router.Use(rateLimitMiddleware)
	}
	router.Use(metricsMiddleware)

	// Health check endpoints
	router.Handle("/health", handle(healthHandler)).Methods("GET")
	router.Handle("/ready", handle(readyHandler)).Methods("GET")

	// Server info
	router.Handle("/info", handle(infoHandler)).Methods("GET")

	// Live log tail and recent log history
	router.Handle("/tail", handle(tailHandler))
	router.Handle("/history", handle(historyHandler)).Methods("GET")

	// Failure injection to exercise the exception path
	router.Handle("/boom", handle(boomHandler))

	// Prometheus metrics, logged through the http.Handler adapter
	router.Handle("/metrics", interceptor.Middleware(promhttp.Handler()))

	// Everything else echoes the request back
	router.PathPrefix("/").Handler(handle(echoHandler))

	return router
}

// handle mounts an error-returning handler behind the request logger.
// A propagated error surfaces as a plain 500 after the interceptor has
// logged it; the interceptor itself never converts errors to responses.
func handle(h reqtrace.HandlerFunc) http.Handler {
	wrapped := interceptor.Wrap(h)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Surface query parameters to the pre-logger's params line.
		// Body forms are left alone so handlers can still read the body.
		if r.Form == nil {
			if q := r.URL.Query(); len(q) > 0 {
				r.Form = q
			}
		}
		if err := wrapped(w, r); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
