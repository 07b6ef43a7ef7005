package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds server configuration
type Config struct {
	Port           string
	EnableTLS      bool
	CertFile       string
	KeyFile        string
	EnableCORS     bool
	LogDestination string // "stderr", "stdout", or a file path
	LogLevel       string // "info" or "error"
	LogColor       string // "auto", "on", or "off"
	MaxBodySize    int64
	HistorySize    int
	RateLimitRPS   float64
	RateLimitBurst int
	ConfigFile     string
	Hostname       string
}

// fileConfig is the optional YAML overlay; only fields present in the
// file override the environment-derived values.
type fileConfig struct {
	Port           *string  `yaml:"port"`
	EnableCORS     *bool    `yaml:"enable_cors"`
	LogDestination *string  `yaml:"log_destination"`
	LogLevel       *string  `yaml:"log_level"`
	LogColor       *string  `yaml:"log_color"`
	HistorySize    *int     `yaml:"history_size"`
	RateLimitRPS   *float64 `yaml:"rate_limit_rps"`
	RateLimitBurst *int     `yaml:"rate_limit_burst"`
}

// loadConfigFromEnv builds a Config from environment variables.
func loadConfigFromEnv() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		EnableTLS:      getEnv("ENABLE_TLS", "false") == "true",
		CertFile:       getEnv("CERT_FILE", "server.crt"),
		KeyFile:        getEnv("KEY_FILE", "server.key"),
		EnableCORS:     getEnv("ENABLE_CORS", "true") == "true",
		LogDestination: getEnv("LOG_DESTINATION", "stderr"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogColor:       getEnv("LOG_COLOR", "auto"),
		MaxBodySize:    parseInt64(getEnv("MAX_BODY_SIZE", "10485760")),
		HistorySize:    int(parseInt64(getEnv("REQTRACE_HISTORY_SIZE", "200"))),
		RateLimitRPS:   parseFloat64(getEnv("REQTRACE_RATE_LIMIT_RPS", "0")),
		RateLimitBurst: int(parseInt64(getEnv("REQTRACE_RATE_LIMIT_BURST", "0"))),
		ConfigFile:     getEnv("REQTRACE_CONFIG_FILE", ""),
	}
}

// applyConfigFile overlays a YAML config file onto cfg.
func applyConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if fc.Port != nil {
		cfg.Port = *fc.Port
	}
	if fc.EnableCORS != nil {
		cfg.EnableCORS = *fc.EnableCORS
	}
	if fc.LogDestination != nil {
		cfg.LogDestination = *fc.LogDestination
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogColor != nil {
		cfg.LogColor = *fc.LogColor
	}
	if fc.HistorySize != nil {
		cfg.HistorySize = *fc.HistorySize
	}
	if fc.RateLimitRPS != nil {
		cfg.RateLimitRPS = *fc.RateLimitRPS
	}
	if fc.RateLimitBurst != nil {
		cfg.RateLimitBurst = *fc.RateLimitBurst
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt64(s string) int64 {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return 0
}

func parseFloat64(s string) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return 0
}
