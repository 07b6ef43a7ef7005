package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// echoHandler mirrors the request back to the caller. Response status
// and artificial latency are steerable through headers so the logger's
// classification can be exercised against a live server:
//
//	X-Echo-Status: 503      force the response status
//	X-Echo-Delay: 750ms     sleep before responding
func echoHandler(w http.ResponseWriter, r *http.Request) error {
	configLock.RLock()
	maxBodySize := config.MaxBodySize
	configLock.RUnlock()

	if d := r.Header.Get("X-Echo-Delay"); d != "" {
		if dur, err := time.ParseDuration(d); err == nil && dur > 0 && dur <= 10*time.Second {
			time.Sleep(dur)
		}
	}

	status := http.StatusOK
	if s := r.Header.Get("X-Echo-Status"); s != "" {
		if code, err := strconv.Atoi(s); err == nil && code >= 100 && code <= 599 {
			status = code
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}

	if len(body) == 0 {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(status)
		fmt.Fprint(w, echoRequestInfo(r))
		return nil
	}

	if ct := r.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(status)
	w.Write(body)
	return nil
}

// echoRequestInfo renders a plain-text request summary for bodyless requests.
func echoRequestInfo(r *http.Request) string {
	info := fmt.Sprintf("%s %s %s\nHost: %s\nRemote: %s\n", r.Method, r.RequestURI, r.Proto, r.Host, getClientIP(r))
	for name, values := range r.Header {
		for _, v := range values {
			info += fmt.Sprintf("%s: %s\n", name, v)
		}
	}
	return info
}

// boomHandler fails on purpose. The returned error flows through the
// interceptor's exception logger before surfacing as a 500.
func boomHandler(w http.ResponseWriter, r *http.Request) error {
	msg := r.URL.Query().Get("message")
	if msg == "" {
		msg = "injected failure"
	}
	return errors.New(msg)
}
