package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	DatabaseDSN string
	UseInMemory bool
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	AuthStub    bool
	Environment string
	SwaggerHost string

	// Demo data lifecycle flags, resolved once at startup and injected into
	// services so nothing reads the environment after boot.
	DemoSeedEnabled  bool
	DemoResetEnabled bool
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=accessibleos port=5432 sslmode=disable"),
		UseInMemory: getEnvBool("USE_IN_MEMORY_DB", false),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   getEnv("JWT_SECRET", "change-me"),
		AuthStub:    getEnvBool("AUTH_STUB", false),
		Environment: getEnv("APP_ENV", "development"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}

	// In production, demo seeding and resets require an explicit opt-in.
	cfg.DemoSeedEnabled = getEnvBool("ENABLE_DEMO_SEED", false) || (cfg.AuthStub && !cfg.IsProduction())
	cfg.DemoResetEnabled = getEnvBool("ENABLE_DEMO_RESET", false) || !cfg.IsProduction()

	return cfg
}

// IsProduction reports whether the process runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
