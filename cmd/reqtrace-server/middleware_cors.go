package main

import "net/http"

// corsAllowHeaders lists the request headers a browser page must be
// able to send when driving the demo server cross-origin: the echo
// steering headers plus a content type for echoed bodies.
const corsAllowHeaders = "Content-Type, X-Echo-Status, X-Echo-Delay"

// corsMiddleware opens the demo endpoints to cross-origin callers and
// answers preflights when enabled in config.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		configLock.RLock()
		enabled := config.EnableCORS
		configLock.RUnlock()

		if !enabled {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
