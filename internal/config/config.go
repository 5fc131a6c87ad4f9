package config

import (
	"os"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Storage
	StorageBackend string // memory | postgres | redis
	DatabaseURL    string // postgres backend
	RedisURL       string // redis backend

	// Session
	SessionSecret string // Used for cookie encryption (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Bootstrap owner account, seeded only when the user collection is empty
	BootstrapOwner         string
	BootstrapOwnerPassword string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:            getEnv("ENV", "development"),
		ServerAddr:     getEnv("SERVER_ADDR", ":3000"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:3000"),
		StorageBackend: getEnv("STORAGE_BACKEND", BackendMemory),
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/linkhub?sslmode=disable"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionSecret:  getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:    getEnv("CORS_ORIGINS", ""),

		BootstrapOwner:         getEnv("BOOTSTRAP_OWNER", ""),
		BootstrapOwnerPassword: getEnv("BOOTSTRAP_OWNER_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
