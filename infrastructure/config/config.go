package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"welcomehome/infrastructure/session"
)

const (
	SessionStoreSQLite = "sqlite"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Addr                  string
	SQLitePath            string
	BackendURL            string
	BackendTimeout        time.Duration
	SessionSecret         string
	SessionStore          string
	RedisURL              string
	SessionMaxAge         int
	RegisterRedirectDelay time.Duration
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Addr:          getenv("APP_ADDR", ":8080"),
		SQLitePath:    getenv("SQLITE_PATH", "welcomehome.db"),
		BackendURL:    getenv("BACKEND_URL", "http://127.0.0.1:8000"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionStore:  strings.ToLower(getenv("SESSION_STORE", SessionStoreSQLite)),
		RedisURL:      getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
	}

	var err error
	if cfg.BackendTimeout, err = readDuration("BACKEND_TIMEOUT", 0); err != nil {
		return Config{}, err
	}
	if cfg.RegisterRedirectDelay, err = readDuration("REGISTER_REDIRECT_DELAY", 2*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SessionMaxAge, err = readInt("SESSION_MAX_AGE", session.DefaultMaxAge); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.SessionSecret) == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}
	switch cfg.SessionStore {
	case SessionStoreSQLite, SessionStoreRedis:
	default:
		return Config{}, fmt.Errorf("invalid SESSION_STORE %q: want %s or %s", cfg.SessionStore, SessionStoreSQLite, SessionStoreRedis)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func readInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return value, nil
}

func readDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}
