package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort             string
	PostgresDSN          string
	JWTSecret            string
	RedisURL             string
	LogLevel             string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxIdle        time.Duration
	DBConnMaxLife        time.Duration
	DBReadyTimeout       time.Duration
	RequestTimeout       time.Duration
	WriteRateLimitPerMin int
	TrustProxyHeaders    bool
}

// Load reads the environment. A .env file in the working directory, when
// present, fills variables that are not already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		PostgresDSN:          getEnv("DATABASE_URL", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DBMaxOpenConns:       getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:        getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:        getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		DBReadyTimeout:       getDuration("DB_READY_TIMEOUT", 30*time.Second),
		RequestTimeout:       getDuration("REQUEST_TIMEOUT", 10*time.Second),
		WriteRateLimitPerMin: getInt("WRITE_RATE_LIMIT_PER_MIN", 60),
		TrustProxyHeaders:    getBool("TRUST_PROXY_HEADERS", false),
	}

	missing := make([]string, 0, 2)
	if cfg.PostgresDSN == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if cfg.WriteRateLimitPerMin < 0 {
		return nil, fmt.Errorf("WRITE_RATE_LIMIT_PER_MIN must not be negative")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}
