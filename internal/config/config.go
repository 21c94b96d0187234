package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port             string
	GinMode          string
	RedisURL         string
	AllowedOrigins   []string
	DefaultPageSize  int
	MaxPageSize      int
	MaxMessageLength int
	MinAge           int
	MaxAge           int
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		RedisURL:         getEnv("REDIS_URL", ""),
		AllowedOrigins:   []string{getEnv("CORS_ORIGIN", "*")},
		DefaultPageSize:  getIntEnv("DEFAULT_PAGE_SIZE", 50),
		MaxPageSize:      getIntEnv("MAX_PAGE_SIZE", 200),
		MaxMessageLength: getIntEnv("MAX_MESSAGE_LENGTH", 2000),
		MinAge:           13,
		MaxAge:           120,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
