package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ErrMissingAPIKey is returned when translation is enabled without a key.
var ErrMissingAPIKey = errors.New("translation enabled but OPENAI_API_KEY is not set")

// Config holds all application configuration.
type Config struct {
	Fetch     FetchConfig
	Scraper   ScraperConfig
	Translate TranslateConfig
	Server    ServerConfig
	Logging   LogConfig
	Batch     BatchConfig
	RateLimit RateLimitConfig
}

// FetchConfig holds page download settings.
type FetchConfig struct {
	Timeout   time.Duration `envconfig:"RELNOTES_FETCH_TIMEOUT" default:"30s"`
	UserAgent string        `envconfig:"RELNOTES_USER_AGENT" default:"relnotes/1.0"`
	Retries   int           `envconfig:"RELNOTES_FETCH_RETRIES" default:"3"`
	RPS       float64       `envconfig:"RELNOTES_FETCH_RPS" default:"2"`
	Burst     int           `envconfig:"RELNOTES_FETCH_BURST" default:"1"`
}

// ScraperConfig holds extraction settings.
type ScraperConfig struct {
	// BaseOrigin overrides the origin derived from the page URL
	BaseOrigin string `envconfig:"RELNOTES_BASE_ORIGIN"`
	PolicyFile string `envconfig:"RELNOTES_POLICY_FILE"`
}

// TranslateConfig holds chat-completions translation settings.
type TranslateConfig struct {
	Enabled        bool          `envconfig:"RELNOTES_TRANSLATE" default:"false"`
	APIKey         string        `envconfig:"OPENAI_API_KEY"`
	Endpoint       string        `envconfig:"RELNOTES_TRANSLATE_ENDPOINT" default:"https://api.openai.com/v1"`
	Model          string        `envconfig:"RELNOTES_TRANSLATE_MODEL" default:"gpt-4o"`
	TargetLanguage string        `envconfig:"RELNOTES_TARGET_LANGUAGE" default:"Japanese"`
	RPS            float64       `envconfig:"RELNOTES_TRANSLATE_RPS" default:"1"`
	Timeout        time.Duration `envconfig:"RELNOTES_TRANSLATE_TIMEOUT" default:"60s"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"RELNOTES_PORT" default:"8000"`
	Host string `envconfig:"RELNOTES_HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// BatchConfig holds batch parsing settings.
type BatchConfig struct {
	Concurrency int `envconfig:"RELNOTES_CONCURRENCY" default:"4"`
}

// RateLimitConfig holds per-IP rate limiting for the API server.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RELNOTES_RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RELNOTES_RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RELNOTES_RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Fetch: FetchConfig{
			Timeout:   30 * time.Second,
			UserAgent: "relnotes/1.0",
			Retries:   3,
			RPS:       2,
			Burst:     1,
		},
		Translate: TranslateConfig{
			Endpoint:       "https://api.openai.com/v1",
			Model:          "gpt-4o",
			TargetLanguage: "Japanese",
			RPS:            1,
			Timeout:        60 * time.Second,
		},
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
		},
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Translate.Enabled && c.Translate.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Batch.Concurrency)
	}
	if c.Fetch.Retries < 0 {
		return fmt.Errorf("fetch retries must not be negative, got %d", c.Fetch.Retries)
	}
	return nil
}
