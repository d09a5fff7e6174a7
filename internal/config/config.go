package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/kmctl-dev/kmctl/internal/logging"
)

// DefaultAPIBaseURL is the backend address used when KMCTL_API_BASE_URL is unset.
const DefaultAPIBaseURL = "http://localhost:7000"

// Config holds the environment-driven settings of the CLI.
type Config struct {
	APIBaseURL     string        `env:"KMCTL_API_BASE_URL" envDefault:"http://localhost:7000"`
	APITimeout     time.Duration `env:"KMCTL_API_TIMEOUT" envDefault:"30s"`
	Environment    string        `env:"KMCTL_ENVIRONMENT" envDefault:"production"`
	LogLevel       string        `env:"KMCTL_LOG_LEVEL" envDefault:"warn"`
	SettingsFile   string        `env:"KMCTL_SETTINGS_FILE"`
	RedactPatterns string        `env:"KMCTL_LOG_REDACT_PATTERNS" envDefault:"password,token,authorization,credential,bearer,apikey,api_key,private,data,env"`
}

// IsDevelopment reports whether the CLI runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// NewConfig parses the environment, after loading an optional .env file from
// the working directory. Variables already set in the environment win.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	logging.SetRedactPatterns(cfg.RedactPatterns)
	return cfg, nil
}
