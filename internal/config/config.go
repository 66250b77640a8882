// Package config loads application configuration from an optional config.yaml
// overridden by environment variables. A .env file, if present, is loaded
// into the environment before resolution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// OpenAIConfig configures the recommendation client. The API key is only
// ever read from the environment, never from the config file.
type OpenAIConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`

	apiKey string
}

// AuthConfig configures the external identity provider used for bearer-token
// verification.
type AuthConfig struct {
	URL           string `yaml:"url"`
	ServiceKeyEnv string `yaml:"service_key_env"`

	serviceKey string
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Auth     AuthConfig     `yaml:"auth"`
}

func (c *OpenAIConfig) APIKey() string { return c.apiKey }

func (c *OpenAIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

func (c *AuthConfig) ServiceKey() string { return c.serviceKey }

// Load reads the config file at path (missing file means defaults), then
// applies environment overrides and resolves secrets. It returns an error if
// a required value is missing after both passes.
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	cfg.OpenAI.apiKey = os.Getenv(cfg.OpenAI.APIKeyEnv)
	cfg.Auth.serviceKey = os.Getenv(cfg.Auth.ServiceKeyEnv)

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database URL is not configured (set DATABASE_URL)")
	}
	if cfg.OpenAI.apiKey == "" {
		return nil, fmt.Errorf("recommendation API key is not configured (set %s)", cfg.OpenAI.APIKeyEnv)
	}
	if cfg.Auth.URL == "" {
		return nil, fmt.Errorf("identity provider URL is not configured (set SUPABASE_URL)")
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		OpenAI: OpenAIConfig{
			BaseURL:     "https://api.openai.com/v1",
			APIKeyEnv:   "OPENAI_API_KEY",
			Model:       "gpt-4o-mini",
			TimeoutSecs: 120,
		},
		Auth: AuthConfig{
			ServiceKeyEnv: "SUPABASE_SERVICE_KEY",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.OpenAI.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		cfg.Auth.URL = v
	}
}
