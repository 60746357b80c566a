package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"gig-marketplace.com/gig-marketplace/internal/constants"
)

type Config struct {
	AppHost string `yaml:"app_host"`
	AppPort string `yaml:"app_port"`

	DatabaseDSN string `yaml:"database_dsn"`
	RateLimit   int    `yaml:"rate_limit_per_minute"`

	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	RedisViewsKey string `yaml:"redis_views_key"`
	// ViewCounter selects where views are buffered: "redis" or "memory".
	ViewCounter string `yaml:"view_counter"`

	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds"`
	StoreTimeoutMs         int `yaml:"store_timeout_ms"`
	MutationRetries        int `yaml:"mutation_retries"`
	SweepIntervalSeconds   int `yaml:"sweep_interval_seconds"`
	MaintenanceWorkers     int `yaml:"maintenance_workers"`

	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		AppHost:                "127.0.0.1",
		AppPort:                "8080",
		DatabaseDSN:            "gigs.db",
		RateLimit:              60,
		RedisHost:              "127.0.0.1",
		RedisPort:              "6379",
		RedisViewsKey:          "gig_views",
		ViewCounter:            "memory",
		ShutdownTimeoutSeconds: 20,
		StoreTimeoutMs:         2000,
		MutationRetries:        constants.DefaultMutationRetries,
		SweepIntervalSeconds:   60,
		MaintenanceWorkers:     4,
		LogLevel:               "info",
	}
}

// Load starts from Default, overlays the YAML file at path when one is given
// and lets environment variables override both.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFromEnv() error {
	c.AppHost = getEnv("APP_HOST", c.AppHost)
	c.AppPort = getEnv("APP_PORT", c.AppPort)
	c.DatabaseDSN = getEnv("DATABASE_DSN", c.DatabaseDSN)
	c.RedisHost = getEnv("REDIS_HOST", c.RedisHost)
	c.RedisPort = getEnv("REDIS_PORT", c.RedisPort)
	c.RedisViewsKey = getEnv("REDIS_VIEWS_KEY", c.RedisViewsKey)
	c.ViewCounter = getEnv("VIEW_COUNTER", c.ViewCounter)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	ints := []struct {
		key  string
		dest *int
	}{
		{"RATE_LIMIT_PER_MINUTE", &c.RateLimit},
		{"SHUTDOWN_TIMEOUT_SECONDS", &c.ShutdownTimeoutSeconds},
		{"STORE_TIMEOUT_MS", &c.StoreTimeoutMs},
		{"MUTATION_RETRIES", &c.MutationRetries},
		{"SWEEP_INTERVAL_SECONDS", &c.SweepIntervalSeconds},
		{"MAINTENANCE_WORKERS", &c.MaintenanceWorkers},
	}
	for _, i := range ints {
		v, err := getEnvAsInt(i.key, *i.dest)
		if err != nil {
			return err
		}
		*i.dest = v
	}
	return nil
}

func (c Config) validate() error {
	var errs []error
	if c.AppHost == "" || c.AppPort == "" {
		errs = append(errs, errors.New("APP_HOST and APP_PORT must not be empty"))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN must not be empty"))
	}
	if c.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0"))
	}
	if c.ViewCounter != "redis" && c.ViewCounter != "memory" {
		errs = append(errs, fmt.Errorf("VIEW_COUNTER must be redis or memory, got %q", c.ViewCounter))
	}
	if c.StoreTimeoutMs <= 0 {
		errs = append(errs, errors.New("STORE_TIMEOUT_MS must be greater than 0"))
	}
	if c.MutationRetries < 0 {
		errs = append(errs, errors.New("MUTATION_RETRIES must not be negative"))
	}
	if c.SweepIntervalSeconds < 0 {
		errs = append(errs, errors.New("SWEEP_INTERVAL_SECONDS must not be negative"))
	}
	if c.MaintenanceWorkers < 0 {
		errs = append(errs, errors.New("MAINTENANCE_WORKERS must not be negative"))
	}
	return errors.Join(errs...)
}

func (c Config) AppURL() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func (c Config) StoreTimeout() time.Duration {
	return time.Duration(c.StoreTimeoutMs) * time.Millisecond
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func (c Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", key, v)
		}
		return i, nil
	}
	return defaultVal, nil
}
