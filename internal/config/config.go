// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath       string // Path to the portfolio database file
	Port               int    // HTTP API port
	LogLevel           string
	DevMode            bool
	PriceAuditSchedule string // Cron schedule for the stale price audit job
	PriceAuditMaxAge   int    // Hours before a stock price is considered stale
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:       getEnv("DATABASE_PATH", "./data/portfolio.db"),
		Port:               getEnvAsInt("PORT", 8080),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DevMode:            getEnvAsBool("DEV_MODE", false),
		PriceAuditSchedule: getEnv("PRICE_AUDIT_SCHEDULE", "@hourly"),
		PriceAuditMaxAge:   getEnvAsInt("PRICE_AUDIT_MAX_AGE_HOURS", 24),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}

	// Resolve to an absolute path so relative working directories don't
	// scatter database files around.
	absPath, err := filepath.Abs(c.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to resolve database path: %w", err)
	}
	c.DatabasePath = absPath

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}

	if c.PriceAuditMaxAge <= 0 {
		return fmt.Errorf("PRICE_AUDIT_MAX_AGE_HOURS must be positive, got %d", c.PriceAuditMaxAge)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
