package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	EnvDevelopment = "DEV"
	EnvProduction  = "PROD"
)

type AppConfig struct {
	Port            string
	PostgresURL     string
	LLMAPIURL       string
	LLMModel        string
	LLMAPIKey       string // fallback key when none is saved in settings
	RedditProxyURLs []string
	HistoryLimit    int
	AppEnv          string // EnvDevelopment or EnvProduction
	LogLevel        slog.Level
}

var Config AppConfig

func LoadConfig() {
	cfg := AppConfig{}

	cfg.AppEnv = os.Getenv("APP_ENV")
	cfg.Port = loadOptional("PORT", "8080")
	cfg.PostgresURL = loadRequired("POSTGRES_URL")
	cfg.LLMAPIURL = loadRequired("LLM_API_URL")
	cfg.LLMModel = loadRequired("LLM_MODEL")
	cfg.LLMAPIKey = loadOptional("LLM_API_KEY", "")
	cfg.RedditProxyURLs = splitList(loadOptional("REDDIT_PROXY_URLS", ""))

	limitString := loadOptional("HISTORY_LIMIT", "500")
	limit, err := strconv.Atoi(limitString)
	if err != nil || limit < 1 {
		slog.Error("Invalid HISTORY_LIMIT", "value", limitString)
		limit = 500
	}
	cfg.HistoryLimit = limit

	lvlString := loadOptional("LOG_LEVEL", "INFO")
	cfg.LogLevel, err = parseLogLevel(lvlString)
	if err != nil {
		slog.Error("Invalid LOG_LEVEL", "error", err)
		cfg.LogLevel = slog.LevelInfo
	}

	Config = cfg
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Required env var not set", "key", key)
		os.Exit(1)
	}
	return value
}

func loadOptional(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c AppConfig) IsProduction() bool {
	return Config.AppEnv == EnvProduction
}
