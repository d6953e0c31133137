package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port              string
	LogLevel          string
	Environment       string
	CORSOrigins       string
	YouTubeAPIKey     string
	RedisURL          string
	PacingMs          int
	MaxPagesPerTerm   int
	MaxStreakChannels int
}

func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		CORSOrigins:       getEnv("CORS_ORIGINS", "*"),
		YouTubeAPIKey:     getEnv("YOUTUBE_API_KEY", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		PacingMs:          getEnvInt("UPSTREAM_PACING_MS", 100),
		MaxPagesPerTerm:   getEnvInt("MAX_PAGES_PER_TERM", 5),
		MaxStreakChannels: getEnvInt("MAX_STREAK_CHANNELS", 8),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
