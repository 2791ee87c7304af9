package config

import (
	"fmt"
	"os"
	"strconv"

	"gridpulse/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Analytics AnalyticsConfig
}

// DatabaseConfig holds database connection settings. The Data Store
// collaborator receives this explicitly at construction; there is no
// process-wide database state.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the connection string, preferring an explicit DATABASE_URL.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

// AnalyticsConfig holds default parameters for the analytic operations.
// Callers can override each one per request within documented bounds.
type AnalyticsConfig struct {
	DefaultStdDevThreshold float64
	DefaultHeatwaveTempF   float64
	DefaultHeatwaveMinDays int
	DefaultHeatPercentile  float64
	DefaultOutlierLimit    int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvIntOrDefault("DB_PORT", 5432),
			User:     getEnvOrDefault("DB_USER", ""),
			Password: getEnvOrDefault("DB_PASS", ""),
			Name:     getEnvOrDefault("DB_NAME", ""),
			SSLMode:  getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port:        getEnvOrDefault("PORT", "8080"),
			CORSOrigins: []string{getEnvOrDefault("CORS_ORIGIN", "*")},
		},
		Analytics: AnalyticsConfig{
			DefaultStdDevThreshold: getEnvFloatOrDefault("OUTLIER_STDDEV_THRESHOLD", 3.0),
			DefaultHeatwaveTempF:   getEnvFloatOrDefault("HEATWAVE_MIN_TEMP_F", 100.0),
			DefaultHeatwaveMinDays: getEnvIntOrDefault("HEATWAVE_MIN_DAYS", 3),
			DefaultHeatPercentile:  getEnvFloatOrDefault("EXTREME_HEAT_PERCENTILE", 99.0),
			DefaultOutlierLimit:    getEnvIntOrDefault("OUTLIER_LIMIT", 1000),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" && config.Database.Name == "" {
		return errors.ConfigInvalid("DATABASE_URL or DB_NAME is required")
	}
	if config.Analytics.DefaultStdDevThreshold < 1 || config.Analytics.DefaultStdDevThreshold > 5 {
		return errors.ConfigInvalid("OUTLIER_STDDEV_THRESHOLD must be in [1, 5]")
	}
	if config.Analytics.DefaultHeatPercentile < 0 || config.Analytics.DefaultHeatPercentile > 100 {
		return errors.ConfigInvalid("EXTREME_HEAT_PERCENTILE must be in [0, 100]")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
