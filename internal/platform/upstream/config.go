// Package upstream provides the HTTP client for the external FastAPI intelligence service.
package upstream

import (
	"os"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is used when NEXT_PUBLIC_API_URL is not set.
	DefaultBaseURL = "http://localhost:8000"
	// DefaultTimeout bounds a single upstream request.
	DefaultTimeout = 8 * time.Second
)

// Config holds configuration for the upstream API client.
type Config struct {
	BaseURL    string        // Base URL of the FastAPI service, without trailing slash
	Configured bool          // True when NEXT_PUBLIC_API_URL was explicitly provided
	Timeout    time.Duration // HTTP request timeout
}

// LoadConfig loads upstream configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
	if v := strings.TrimSpace(os.Getenv("NEXT_PUBLIC_API_URL")); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
		cfg.Configured = true
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}
