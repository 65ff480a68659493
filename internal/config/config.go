package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port         string
	DataDir      string
	ScenarioFile string

	// DatabaseURL selects Postgres for report storage; DBPath (SQLite) is
	// used when it is empty.
	DatabaseURL string
	DBPath      string

	RedisURL     string
	PlanCacheTTL time.Duration

	LogLevel string
	LogFile  string

	Workers       int
	MaxDeliveries int
	TopK          int
}

// Get returns the environment value for key or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration. Malformed numbers and durations are errors.
func Load() (Config, error) {
	cfg := Config{
		Port:         Get("PORT", "8080"),
		DataDir:      Get("DATA_DIR", "data"),
		ScenarioFile: Get("SCENARIO_FILE", ""),
		DatabaseURL:  Get("DATABASE_URL", ""),
		DBPath:       Get("DB_PATH", "data/reports.db"),
		RedisURL:     Get("REDIS_URL", ""),
		LogLevel:     Get("LOG_LEVEL", "info"),
		LogFile:      Get("LOG_FILE", ""),
	}

	var err error
	if cfg.PlanCacheTTL, err = getDuration("PLAN_CACHE_TTL", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.Workers, err = getInt("WORKERS", 0); err != nil {
		return Config{}, err
	}
	if cfg.MaxDeliveries, err = getInt("MAX_DELIVERIES", 8); err != nil {
		return Config{}, err
	}
	if cfg.TopK, err = getInt("TOP_K", 3); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("config: %s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
