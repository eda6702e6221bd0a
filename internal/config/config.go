package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the dashboard
type Config struct {
	Port            string
	APIBaseURL      string
	AllowedOrigins  []string
	LogLevel        string
	ChartMode       string
	ChartAssetsHost string
	ScenariosFile   string
	FeedLimit       int
	HealthTimeout   time.Duration
	RouteTimeout    time.Duration
	AgentsTimeout   time.Duration
	FeedTimeout     time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Port:            getEnv("PORT", "8501"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:8000"),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ChartMode:       getEnv("CHART_MODE", "auto"),
		ChartAssetsHost: getEnv("CHART_ASSETS_HOST", ""),
		ScenariosFile:   getEnv("SCENARIOS_FILE", ""),
	}

	if _, err := url.ParseRequestURI(config.APIBaseURL); err != nil {
		return nil, fmt.Errorf("invalid API_BASE_URL: %w", err)
	}

	feedLimit, err := strconv.Atoi(getEnv("FEED_LIMIT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid FEED_LIMIT: %w", err)
	}
	if feedLimit <= 0 {
		return nil, fmt.Errorf("FEED_LIMIT must be positive, got %d", feedLimit)
	}
	config.FeedLimit = feedLimit

	// Parse per-operation API timeouts
	healthTimeout, err := strconv.Atoi(getEnv("HEALTH_TIMEOUT", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid HEALTH_TIMEOUT: %w", err)
	}
	config.HealthTimeout = time.Duration(healthTimeout) * time.Second

	routeTimeout, err := strconv.Atoi(getEnv("ROUTE_TIMEOUT", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid ROUTE_TIMEOUT: %w", err)
	}
	config.RouteTimeout = time.Duration(routeTimeout) * time.Second

	agentsTimeout, err := strconv.Atoi(getEnv("AGENTS_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid AGENTS_TIMEOUT: %w", err)
	}
	config.AgentsTimeout = time.Duration(agentsTimeout) * time.Second

	feedTimeout, err := strconv.Atoi(getEnv("FEED_TIMEOUT", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid FEED_TIMEOUT: %w", err)
	}
	config.FeedTimeout = time.Duration(feedTimeout) * time.Second

	// Trim spaces from allowed origins
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
