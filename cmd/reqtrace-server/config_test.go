package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_DESTINATION", "LOG_LEVEL", "LOG_COLOR", "REQTRACE_HISTORY_SIZE"} {
		t.Setenv(key, "")
	}
	cfg := loadConfigFromEnv()
	if cfg.Port != "8080" {
		t.Errorf("default port: got %q want '8080'", cfg.Port)
	}
	if cfg.LogDestination != "stderr" {
		t.Errorf("default log destination: got %q want 'stderr'", cfg.LogDestination)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level: got %q want 'info'", cfg.LogLevel)
	}
	if cfg.LogColor != "auto" {
		t.Errorf("default log color: got %q want 'auto'", cfg.LogColor)
	}
	if cfg.HistorySize != 200 {
		t.Errorf("default history size: got %d want 200", cfg.HistorySize)
	}
}

func TestLoadConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("REQTRACE_RATE_LIMIT_RPS", "2.5")
	cfg := loadConfigFromEnv()
	if cfg.Port != "9090" {
		t.Errorf("port override: got %q want '9090'", cfg.Port)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("log level override: got %q want 'error'", cfg.LogLevel)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Errorf("rate limit override: got %v want 2.5", cfg.RateLimitRPS)
	}
}

func TestApplyConfigFileOverlay(t *testing.T) {
	t.Setenv("LOG_DESTINATION", "")
	path := filepath.Join(t.TempDir(), "reqtrace.yaml")
	data := "port: \"7070\"\nlog_level: error\nlog_color: \"off\"\nrate_limit_rps: 5\nrate_limit_burst: 10\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := loadConfigFromEnv()
	if err := applyConfigFile(&cfg, path); err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "7070" {
		t.Errorf("port: got %q want '7070'", cfg.Port)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("log level: got %q want 'error'", cfg.LogLevel)
	}
	if cfg.LogColor != "off" {
		t.Errorf("log color: got %q want 'off'", cfg.LogColor)
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
		t.Errorf("rate limit: got %v/%d want 5/10", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	// Fields absent from the file keep their env-derived values.
	if cfg.LogDestination != "stderr" {
		t.Errorf("log destination clobbered: got %q", cfg.LogDestination)
	}
}

func TestApplyConfigFileErrors(t *testing.T) {
	cfg := loadConfigFromEnv()
	if err := applyConfigFile(&cfg, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted, want error")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [not a string"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := applyConfigFile(&cfg, path); err == nil {
		t.Error("malformed yaml accepted, want error")
	}
}

func TestColorEnabled(t *testing.T) {
	if !colorEnabled("on", false) {
		t.Error(`colorEnabled("on", false) = false`)
	}
	if colorEnabled("off", true) {
		t.Error(`colorEnabled("off", true) = true`)
	}
	if colorEnabled("auto", false) {
		t.Error(`colorEnabled("auto", false) = true`)
	}
	if !colorEnabled("auto", true) {
		t.Error(`colorEnabled("auto", true) = false`)
	}
}
