package main

import (
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/time/rate"

	"github.com/reqtrace/reqtrace"
)

var (
	configLock     sync.RWMutex
	config         Config
	startTime      time.Time
	rateLimiter    *rate.Limiter
	logSink        *reqtrace.Sink
	interceptor    *reqtrace.Interceptor
	tailFeed       *broadcaster
	requestCounter uint64
)

// initializeServer performs the one-time process setup: configuration,
// log sink, interceptor, rate limiter and metrics. It must complete
// before the first request is served.
func initializeServer() {
	startTime = time.Now()

	cfg := loadConfigFromEnv()
	if cfg.ConfigFile != "" {
		if err := applyConfigFile(&cfg, cfg.ConfigFile); err != nil {
			log.Fatalf("Failed to apply config file %s: %v", cfg.ConfigFile, err)
		}
	}
	if hostname, _ := os.Hostname(); hostname != "" {
		cfg.Hostname = hostname
	}
	configLock.Lock()
	config = cfg
	configLock.Unlock()

	dest, isTerminal := openLogDestination(cfg)
	tailFeed = newBroadcaster(cfg.HistorySize)
	logSink = reqtrace.NewSink(io.MultiWriter(dest, tailFeed), reqtrace.ParseLevel(cfg.LogLevel))

	var opts []reqtrace.Option
	if !colorEnabled(cfg.LogColor, isTerminal) {
		opts = append(opts, reqtrace.WithPlainOutput())
	}
	interceptor = reqtrace.New(logSink, opts...)

	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
		rateLimiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	registerPrometheusMetrics()
}

// openLogDestination resolves the configured destination to a writer
// and reports whether it is a terminal.
func openLogDestination(cfg Config) (io.Writer, bool) {
	switch cfg.LogDestination {
	case "", "stderr":
		return os.Stderr, isatty.IsTerminal(os.Stderr.Fd())
	case "stdout":
		return os.Stdout, isatty.IsTerminal(os.Stdout.Fd())
	}
	f, err := os.OpenFile(cfg.LogDestination, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log destination %s: %v", cfg.LogDestination, err)
	}
	return f, false
}

// colorEnabled decides the output variant: "on" and "off" are explicit,
// anything else means color only when writing to a terminal.
func colorEnabled(mode string, isTerminal bool) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal
}
