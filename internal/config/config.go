package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	JWTSecret       string
	JWTAccessExpiry time.Duration

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string
	AppName      string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: getDurationEnv("JWT_ACCESS_EXPIRY", 24*time.Hour),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
		AppName:      getEnv("APP_NAME", "TalentBoard"),
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
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
