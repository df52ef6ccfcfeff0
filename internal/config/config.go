// Package config loads the dashboard configuration from environment
// variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// GatewayConfig holds the remote job service connection settings. The
// session token is injected here at construction time; nothing in the
// core reaches into ambient storage for it.
type GatewayConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// PollConfig holds the polling scheduler settings.
type PollConfig struct {
	Interval time.Duration
}

// ViewConfig holds presentation defaults.
type ViewConfig struct {
	PageSize int
}

// MetricsConfig holds the metrics server settings.
type MetricsConfig struct {
	Port string
}

// Config is the full dashboard configuration.
type Config struct {
	Gateway GatewayConfig
	Poll    PollConfig
	View    ViewConfig
	Metrics MetricsConfig
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Gateway: GatewayConfig{
			BaseURL: GetEnv("URLINSIGHT_API_URL", "http://localhost:8080"),
			Token:   GetEnv("URLINSIGHT_API_TOKEN", ""),
			Timeout: GetDurationEnv("URLINSIGHT_API_TIMEOUT", 20*time.Second),
		},
		Poll: PollConfig{
			Interval: GetDurationEnv("URLINSIGHT_POLL_INTERVAL", 5*time.Second),
		},
		View: ViewConfig{
			PageSize: GetIntEnv("URLINSIGHT_PAGE_SIZE", 10),
		},
		Metrics: MetricsConfig{
			Port: GetEnv("METRICS_PORT", "9090"),
		},
	}
}

// GetEnv gets an environment variable with a default value.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetIntEnv gets an integer environment variable with a default value.
func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetDurationEnv gets a duration environment variable with a default value.
func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetBoolEnv gets a boolean environment variable with a default value.
func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
