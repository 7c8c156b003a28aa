package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort        string
	BaseURL           string
	FrontendURL       string
	OpenAIKey         string
	AIProvider        string
	AIModel           string
	AIBaseURL         string
	KnowledgeBasePath string
	EnableHSTS        bool
	ServerDebugMode   bool

	// Sliding-window rate limit settings. Requests and Window override the
	// built-in presets when set.
	RateLimitRequests       int
	RateLimitWindow         time.Duration
	StrictRateLimitRequests int
	StrictRateLimitWindow   time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
		OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		AIProvider:        getEnv("AI_PROVIDER", "openai"),
		AIModel:           getEnv("AI_MODEL", ""),
		AIBaseURL:         getEnv("AI_BASE_URL", ""),
		KnowledgeBasePath: getEnv("KNOWLEDGE_BASE_PATH", ""),
		EnableHSTS:        getEnvBool("ENABLE_HSTS", false),
		ServerDebugMode:   getEnvBool("SERVER_DEBUG_MODE", false),

		RateLimitRequests:       getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:         getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		StrictRateLimitRequests: getEnvInt("STRICT_RATE_LIMIT_REQUESTS", 20),
		StrictRateLimitWindow:   getEnvDuration("STRICT_RATE_LIMIT_WINDOW", 15*time.Minute),
	}

	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	if cfg.RateLimitRequests < 0 || cfg.StrictRateLimitRequests < 0 {
		return nil, fmt.Errorf("rate limit request counts must not be negative")
	}
	if cfg.RateLimitWindow <= 0 || cfg.StrictRateLimitWindow <= 0 {
		return nil, fmt.Errorf("rate limit windows must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
