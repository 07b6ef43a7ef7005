package main

import (
	"net/http"
)

// rateLimitMiddleware enforces a global rate limiter, skipping the
// log-tail path so long-lived streams never consume request budget.
func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tail" {
			next.ServeHTTP(w, r)
			return
		}
		if !rateLimiter.Allow() {
			// Set headers before writing status/body
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
