package main

import (
	"encoding/json"
	"net"
	"net/http"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// Health check handlers
func healthHandler(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
		"uptime":    time.Since(startTime).String(),
	})
}

func readyHandler(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
}

// Server info handler
func infoHandler(w http.ResponseWriter, r *http.Request) error {
	configLock.RLock()
	hostname := config.Hostname
	logDest := config.LogDestination
	logLevel := config.LogLevel
	configLock.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]interface{}{
		"timestamp":   time.Now(),
		"method":      r.Method,
		"url":         r.RequestURI,
		"path":        r.URL.Path,
		"query":       r.URL.Query(),
		"headers":     r.Header,
		"remote_addr": getClientIP(r),
		"user_agent":  r.UserAgent(),
		"protocol":    r.Proto,
		"tls":         r.TLS != nil,
		"server": map[string]interface{}{
			"hostname":        hostname,
			"go_version":      runtime.Version(),
			"platform":        runtime.GOOS + "/" + runtime.GOARCH,
			"start_time":      startTime,
			"uptime":          time.Since(startTime).String(),
			"request_count":   atomic.LoadUint64(&requestCounter),
			"log_destination": logDest,
			"log_level":       logLevel,
		},
	})
}

// Helper functions
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
