// Package config holds process configuration sourced from the environment.
package config

import (
	"errors"
	"os"

	"mercury-mcp/internal/mercury"
)

// Transport names for the MCP server.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Config contains the server configuration.
type Config struct {
	// APIKey is the Mercury API bearer token. Required.
	APIKey string

	// BaseURL is the Mercury API base URL.
	BaseURL string

	// Transport selects how the MCP server is exposed: stdio or sse.
	Transport string

	// SSEAddr is the listen address for the SSE transport.
	SSEAddr string

	// OpsAddr is the listen address for the health/metrics server.
	// Empty disables it.
	OpsAddr string

	// LogLevel is the zerolog level name.
	LogLevel string

	// LogFile receives a copy of the log stream in addition to stderr.
	// Empty disables file logging.
	LogFile string
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:   mercury.DefaultBaseURL,
		Transport: TransportStdio,
		SSEAddr:   ":8080",
		OpsAddr:   ":9090",
		LogLevel:  "info",
		LogFile:   "mcp-server-mercury.log",
	}
}

// FromEnv builds a Config from environment variables layered over the
// defaults. Callers load .env files before calling this.
func FromEnv() Config {
	cfg := DefaultConfig()
	cfg.APIKey = os.Getenv("MERCURY_API_KEY")
	cfg.BaseURL = getenv("MERCURY_API_BASE", cfg.BaseURL)
	cfg.Transport = getenv("MCP_TRANSPORT", cfg.Transport)
	cfg.SSEAddr = getenv("MCP_SSE_ADDR", cfg.SSEAddr)
	cfg.OpsAddr = getenv("OPS_ADDR", cfg.OpsAddr)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getenv("LOG_FILE", cfg.LogFile)
	return cfg
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("MERCURY_API_KEY environment variable is required")
	}
	if c.Transport != TransportStdio && c.Transport != TransportSSE {
		return errors.New("transport must be stdio or sse")
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
