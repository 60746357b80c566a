package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"APP_HOST", "APP_PORT", "DATABASE_DSN", "RATE_LIMIT_PER_MINUTE",
	"REDIS_HOST", "REDIS_PORT", "REDIS_VIEWS_KEY", "VIEW_COUNTER",
	"SHUTDOWN_TIMEOUT_SECONDS", "STORE_TIMEOUT_MS", "MUTATION_RETRIES",
	"SWEEP_INTERVAL_SECONDS", "MAINTENANCE_WORKERS", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppURL() != "127.0.0.1:8080" {
		t.Errorf("unexpected app url %s", cfg.AppURL())
	}
	if cfg.MutationRetries != 3 || cfg.ViewCounter != "memory" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.StoreTimeout() != 2*time.Second {
		t.Errorf("unexpected store timeout %v", cfg.StoreTimeout())
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "app_port: \"9090\"\nrate_limit_per_minute: 120\nview_counter: redis\nredis_host: cache\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("MUTATION_RETRIES", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppPort != "9090" || cfg.ViewCounter != "redis" || cfg.RedisAddr() != "cache:6379" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.RateLimit != 30 || cfg.MutationRetries != 5 {
		t.Errorf("env must override the file: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)

	t.Setenv("STORE_TIMEOUT_MS", "soon")
	if _, err := Load(""); err == nil {
		t.Fatal("expected an error for a non-integer value")
	}

	t.Setenv("STORE_TIMEOUT_MS", "100")
	t.Setenv("VIEW_COUNTER", "disk")
	if _, err := Load(""); err == nil {
		t.Fatal("expected an error for an unknown view counter")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
