package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds all application configuration, loaded from environment
// variables
type Config struct {
	ServerPort  string
	StoreDriver string

	JWTSecret   string
	JWTExpHours int64

	SeedFile      string
	SeedUsersFile string

	AIEndpoint string
	AIKey      string
	AITimeout  time.Duration
}

// Load reads application configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		StoreDriver:   getEnv("STORE_DRIVER", StoreDriverPostgres),
		JWTSecret:     os.Getenv("JWT_SECRET_KEY"),
		JWTExpHours:   getEnvAsInt64("JWT_EXPIRATION_HOURS", 24),
		SeedFile:      getEnv("SEED_FILE", "seed/products.json"),
		SeedUsersFile: getEnv("SEED_USERS_FILE", "seed/users.json"),
		AIEndpoint:    os.Getenv("AI_ENDPOINT"),
		AIKey:         os.Getenv("AI_API_KEY"),
		AITimeout:     time.Duration(getEnvAsInt64("AI_TIMEOUT_SECONDS", 8)) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks required values and enum fields
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}
	if c.StoreDriver != StoreDriverPostgres && c.StoreDriver != StoreDriverMemory {
		return fmt.Errorf("invalid STORE_DRIVER %q (must be %s or %s)", c.StoreDriver, StoreDriverPostgres, StoreDriverMemory)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
