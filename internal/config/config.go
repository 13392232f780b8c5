// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/route-search/route-search-and-aggregation-system/internal/usecase"
)

// Cache backend identifiers.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Search  SearchConfig
	Cache   CacheConfig
	Logging LoggingConfig
	App     AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// SearchConfig holds the search orchestration policies.
type SearchConfig struct {
	// AvailabilityStrategy folds provider health flags into one boolean:
	// "any" or "all". There is no default: leaving it unset is a fatal
	// configuration error caught here at startup.
	AvailabilityStrategy string `env:"SEARCH_AVAILABILITY_STRATEGY"`

	// FailureMode decides whether a single provider failure fails a live
	// search: "partial" or "strict".
	FailureMode string `env:"SEARCH_FAILURE_MODE" envDefault:"partial"`

	// GlobalTimeout bounds a whole search request.
	GlobalTimeout time.Duration `env:"SEARCH_GLOBAL_TIMEOUT" envDefault:"10s"`
}

// CacheConfig holds cache store settings.
type CacheConfig struct {
	// Backend selects the store: "memory" or "redis".
	Backend string `env:"CACHE_BACKEND" envDefault:"memory"`

	RedisAddr     string `env:"CACHE_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"CACHE_REDIS_PASSWORD"`
	RedisDB       int    `env:"CACHE_REDIS_DB" envDefault:"0"`

	// Namespace prefixes every key so a Redis database can be shared.
	Namespace string `env:"CACHE_NAMESPACE" envDefault:"route-search"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Provider endpoint settings, one block per upstream.
type ProviderConfig struct {
	ProviderOneBaseURL string        `env:"PROVIDER_ONE_BASE_URL" envDefault:"http://localhost:8081"`
	ProviderTwoBaseURL string        `env:"PROVIDER_TWO_BASE_URL" envDefault:"http://localhost:8082"`
	Timeout            time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"5s"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadProviders reads the provider endpoint configuration.
func LoadProviders() (*ProviderConfig, error) {
	cfg := &ProviderConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse provider config: %w", err)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("PROVIDER_TIMEOUT must be positive")
	}
	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
// Invalid policies are fatal here so they can never surface at request time.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Search.GlobalTimeout <= 0 {
		return fmt.Errorf("SEARCH_GLOBAL_TIMEOUT must be positive")
	}

	if _, err := usecase.ParseAvailabilityStrategy(cfg.Search.AvailabilityStrategy); err != nil {
		return fmt.Errorf("SEARCH_AVAILABILITY_STRATEGY: %w", err)
	}
	if _, err := usecase.ParseFailureMode(cfg.Search.FailureMode); err != nil {
		return fmt.Errorf("SEARCH_FAILURE_MODE: %w", err)
	}

	switch cfg.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of: %s, %s; got %q",
			CacheBackendMemory, CacheBackendRedis, cfg.Cache.Backend)
	}
	if cfg.Cache.Backend == CacheBackendRedis && cfg.Cache.RedisAddr == "" {
		return fmt.Errorf("CACHE_REDIS_ADDR is required for the redis backend")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// AvailabilityStrategy returns the parsed strategy.
// Call only after Load has validated the configuration.
func (c *Config) AvailabilityStrategy() usecase.AvailabilityStrategy {
	strategy, _ := usecase.ParseAvailabilityStrategy(c.Search.AvailabilityStrategy)
	return strategy
}

// FailureMode returns the parsed failure mode.
// Call only after Load has validated the configuration.
func (c *Config) FailureMode() usecase.FailureMode {
	mode, _ := usecase.ParseFailureMode(c.Search.FailureMode)
	return mode
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
