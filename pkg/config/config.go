package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. Environment
// variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// External services
	Yahoo YahooConfig
	LLM   LLMConfig

	// Batch evaluation
	Batch BatchConfig

	// Watchlist scheduling
	Watch WatchConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// YahooConfig holds the financial data provider configuration.
type YahooConfig struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	Burst          int
}

// LLMConfig holds the narration provider configuration.
type LLMConfig struct {
	Provider     string // gemini or grok
	GeminiAPIKey string
	GeminiModel  string
	XAIAPIKey    string
	GrokBaseURL  string
	GrokModel    string
	Timeout      time.Duration
}

// BatchConfig bounds concurrent per-ticker pipelines.
type BatchConfig struct {
	Workers int
}

// WatchConfig drives the scheduled watchlist job.
type WatchConfig struct {
	Tickers  []string
	Schedule string
	Strategy string
}

// Load reads configuration from environment variables. Only this
// function calls os.Getenv.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8087"),
		Env:  getEnv("ENV", "development"),

		Yahoo: YahooConfig{
			BaseURL:        getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			Timeout:        getEnvAsDuration("YAHOO_TIMEOUT", "20s"),
			RequestsPerSec: getEnvAsFloat("YAHOO_REQUESTS_PER_SEC", 2.0),
			Burst:          getEnvAsInt("YAHOO_BURST", 4),
		},

		LLM: LLMConfig{
			Provider:     getEnv("LLM_PROVIDER", "gemini"),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			XAIAPIKey:    getEnv("XAI_API_KEY", ""),
			GrokBaseURL:  getEnv("GROK_BASE_URL", "https://api.x.ai/v1"),
			GrokModel:    getEnv("GROK_MODEL", "grok-3-mini"),
			Timeout:      getEnvAsDuration("LLM_TIMEOUT", "60s"),
		},

		Batch: BatchConfig{
			Workers: getEnvAsInt("BATCH_WORKERS", 5),
		},

		Watch: WatchConfig{
			Tickers:  getEnvAsList("WATCH_TICKERS", []string{}),
			Schedule: getEnv("WATCH_SCHEDULE", "0 0 9 * * 1-5"),
			Strategy: getEnv("WATCH_STRATEGY", "defensive"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks required configuration values.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.LLM.Provider != "gemini" && c.LLM.Provider != "grok" {
		return fmt.Errorf("LLM_PROVIDER must be one of: gemini, grok")
	}

	if c.Batch.Workers < 1 {
		return fmt.Errorf("BATCH_WORKERS must be at least 1")
	}

	return nil
}

// loadEnvFile tries to load .env from likely locations.
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, strings.ToUpper(trimmed))
		}
	}
	return list
}
