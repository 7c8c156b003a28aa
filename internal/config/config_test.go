package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	for _, key := range []string{
		"SERVER_PORT", "FRONTEND_URL", "AI_PROVIDER", "KNOWLEDGE_BASE_PATH",
		"RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "STRICT_RATE_LIMIT_REQUESTS",
		"ENABLE_HSTS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.FrontendURL != "http://localhost:3000" {
		t.Errorf("unexpected default frontend URL: %s", cfg.FrontendURL)
	}
	if cfg.AIProvider != "openai" {
		t.Errorf("expected default provider openai, got %s", cfg.AIProvider)
	}
	if cfg.KnowledgeBasePath != "" {
		t.Errorf("expected empty knowledge base path, got %s", cfg.KnowledgeBasePath)
	}
	if cfg.RateLimitRequests != 100 {
		t.Errorf("expected default rate limit 100, got %d", cfg.RateLimitRequests)
	}
	if cfg.RateLimitWindow != 15*time.Minute {
		t.Errorf("expected default window 15m, got %s", cfg.RateLimitWindow)
	}
	if cfg.StrictRateLimitRequests != 20 {
		t.Errorf("expected default strict rate limit 20, got %d", cfg.StrictRateLimitRequests)
	}
	if cfg.EnableHSTS {
		t.Error("expected HSTS disabled by default")
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when OPENAI_API_KEY is missing")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("AI_MODEL", "gpt-4o-mini")
	t.Setenv("KNOWLEDGE_BASE_PATH", "/etc/intake/kb.yaml")
	t.Setenv("RATE_LIMIT_REQUESTS", "50")
	t.Setenv("RATE_LIMIT_WINDOW", "5m")
	t.Setenv("STRICT_RATE_LIMIT_REQUESTS", "5")
	t.Setenv("ENABLE_HSTS", "true")
	t.Setenv("SERVER_DEBUG_MODE", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerPort != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.ServerPort)
	}
	if cfg.AIModel != "gpt-4o-mini" {
		t.Errorf("unexpected AI model: %s", cfg.AIModel)
	}
	if cfg.KnowledgeBasePath != "/etc/intake/kb.yaml" {
		t.Errorf("unexpected knowledge base path: %s", cfg.KnowledgeBasePath)
	}
	if cfg.RateLimitRequests != 50 {
		t.Errorf("expected rate limit 50, got %d", cfg.RateLimitRequests)
	}
	if cfg.RateLimitWindow != 5*time.Minute {
		t.Errorf("expected window 5m, got %s", cfg.RateLimitWindow)
	}
	if cfg.StrictRateLimitRequests != 5 {
		t.Errorf("expected strict rate limit 5, got %d", cfg.StrictRateLimitRequests)
	}
	if !cfg.EnableHSTS {
		t.Error("expected HSTS enabled")
	}
	if !cfg.ServerDebugMode {
		t.Error("expected debug mode enabled")
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("RATE_LIMIT_WINDOW", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RateLimitWindow != 15*time.Minute {
		t.Errorf("expected fallback to 15m, got %s", cfg.RateLimitWindow)
	}
}

func TestLoadRejectsNegativeLimits(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("RATE_LIMIT_REQUESTS", "-1")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative rate limit")
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL_VALUE", tt.value)
			if got := getEnvBool("TEST_BOOL_VALUE", false); got != tt.want {
				t.Errorf("getEnvBool(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
