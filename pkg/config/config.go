package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Application settings, sourced from the environment.
type Config struct {
	Server  ServerConfig
	Feed    FeedConfig
	Logging LoggingConfig
}

// Server settings
type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
}

// Feed settings
type FeedConfig struct {
	URL                string
	FetchTimeout       time.Duration
	RateLimitPerSecond int
	PageSize           int
}

// Logging settings
type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", "30s"),
		},
		Feed: FeedConfig{
			URL:                getEnv("FEED_URL", ""),
			FetchTimeout:       getDurationEnv("FEED_FETCH_TIMEOUT", "30s"),
			RateLimitPerSecond: getIntEnv("FEED_RATE_LIMIT_PER_SECOND", 10),
			PageSize:           getIntEnv("PAGE_SIZE", 10),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if config.Feed.URL == "" {
		return nil, fmt.Errorf("FEED_URL is required")
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
