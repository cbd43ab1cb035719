package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != "https://api.mercury.com/api/v1" {
		t.Errorf("Expected production base URL, got %s", cfg.BaseURL)
	}

	if cfg.Transport != TransportStdio {
		t.Errorf("Expected default transport stdio, got %s", cfg.Transport)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel to be 'info', got %s", cfg.LogLevel)
	}
}

func TestValidate_RequiresAPIKey(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error without API key")
	}

	cfg.APIKey = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got error: %v", err)
	}
}

func TestValidate_RejectsUnknownTransport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "secret"
	cfg.Transport = "websocket"

	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for unknown transport")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("MERCURY_API_KEY", "env-key")
	t.Setenv("MERCURY_API_BASE", "http://localhost:8181/api/v1")
	t.Setenv("MCP_TRANSPORT", "sse")

	cfg := FromEnv()

	if cfg.APIKey != "env-key" {
		t.Errorf("Expected API key from env, got %s", cfg.APIKey)
	}
	if cfg.BaseURL != "http://localhost:8181/api/v1" {
		t.Errorf("Expected base URL override, got %s", cfg.BaseURL)
	}
	if cfg.Transport != TransportSSE {
		t.Errorf("Expected sse transport, got %s", cfg.Transport)
	}
	if cfg.OpsAddr != ":9090" {
		t.Errorf("Expected default ops addr, got %s", cfg.OpsAddr)
	}
}
