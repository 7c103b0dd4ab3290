package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Recipe store backends.
const (
	StoreMemory   = "memory"
	StoreDatabase = "database"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application.
type Config struct {
	// Server
	ServerHost string
	ServerPort string

	// Which recipe backend to use: memory or database.
	RecipeStore string

	// Database (users and AI integrations always live here; recipes
	// only when RecipeStore is "database")
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis (optional; enables rate limiting when set)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Auth and secrets encryption
	JWTSecret string

	// CORS
	AllowedOrigins []string
}

// LoadConfig reads configuration from the environment. Secrets accept
// a *_FILE fallback pointing at a mounted secret file.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		RecipeStore:    getEnv("RECIPE_STORE", StoreMemory),
		DBDriver:       getEnv("DB_DRIVER", DriverSQLite),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getSecret("DB_USER", "lomith"),
		DBPassword:     getSecret("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "lomith"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		SQLitePath:     getEnv("SQLITE_PATH", "lomith.db"),
		RedisHost:      getEnv("REDIS_HOST", ""),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getSecret("REDIS_PASSWORD", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		JWTSecret:      getSecret("JWT_SECRET", ""),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// RedisEnabled reports whether a Redis endpoint is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getSecret reads KEY, falling back to the contents of the file named
// by KEY_FILE (docker secrets convention), then to the default.
func getSecret(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		content, err := os.ReadFile(path)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
