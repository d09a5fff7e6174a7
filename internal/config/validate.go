package config

import (
	"fmt"
	"net/url"

	"go.uber.org/zap/zapcore"
)

// Validate performs runtime validations on the loaded configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid API base URL %q: %w", cfg.APIBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API base URL must start with http:// or https:// (got %q)", cfg.APIBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("API base URL %q has no host", cfg.APIBaseURL)
	}
	if cfg.APITimeout <= 0 {
		return fmt.Errorf("API timeout must be positive (got %s)", cfg.APITimeout)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	return nil
}
