// Package config provides centralized configuration management.
//
// Configuration is loaded from a YAML file when CONFIG_PATH points at
// one, otherwise from environment variables. Values in the YAML file may
// reference environment variables with ${VAR} syntax.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`
	// Path is the SQLite database file (sqlite driver only).
	Path string `yaml:"path"`
	// DSN is the PostgreSQL connection string (postgres driver only).
	DSN string `yaml:"dsn"`
}

// AuthConfig holds token settings.
type AuthConfig struct {
	// JWTSecret signs session tokens. Required outside of tests.
	JWTSecret string `yaml:"jwt_secret"`
	// TokenTTLHours is how long issued tokens stay valid.
	TokenTTLHours int `yaml:"token_ttl_hours"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and parses a YAML config file, expanding ${VAR} references
// against the environment.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := defaults()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, cfg.validate()
}

// LoadFromEnv builds the configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	cfg := defaults()
	cfg.Server.Port = envInt("PORT", cfg.Server.Port)
	cfg.Storage.Driver = envString("DB_DRIVER", cfg.Storage.Driver)
	cfg.Storage.Path = envString("DB_PATH", cfg.Storage.Path)
	cfg.Storage.DSN = envString("DB_DSN", cfg.Storage.DSN)
	cfg.Auth.JWTSecret = envString("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTLHours = envInt("TOKEN_TTL_HOURS", cfg.Auth.TokenTTLHours)
	cfg.Logging.Level = envString("LOG_LEVEL", cfg.Logging.Level)
	return cfg, cfg.validate()
}

// LoadOrEnv loads from the file named by CONFIG_PATH when set, otherwise
// from the environment.
func LoadOrEnv() (*Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return Load(path)
	}
	return LoadFromEnv()
}

func defaults() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080},
		Storage: StorageConfig{Driver: "sqlite", Path: "./data/receipts.db"},
		Auth:    AuthConfig{TokenTTLHours: 24},
		Logging: LoggingConfig{Level: "info"},
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("auth.token_ttl_hours must be positive")
	}
	return nil
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
