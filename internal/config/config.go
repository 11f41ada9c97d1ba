package config

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	DataDir     string
	RedisURL    string
	StartMap    string
	StartHero   string
	Environment string
	LogLevel    slog.Level
	DevMode     bool
}

func Load() *Config {
	return &Config{
		DataDir:     getEnv("DATA_DIR", "./data"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		StartMap:    getEnv("START_MAP", "oakvale_town"),
		StartHero:   getEnv("START_HERO", "aria"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DevMode:     parseBool(getEnv("DEV_MODE", "false")),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
