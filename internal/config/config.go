// Package config loads application configuration from an optional YAML file
// with environment-variable overrides. A .env file in the working directory
// is honoured for local development.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port int `yaml:"port" env:"APPCORE_PORT"`
}

// DatabaseConfig points at PostgreSQL. An empty DSN selects the in-memory
// store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"APPCORE_DATABASE_DSN"`
}

// RedisConfig points at the session store. An empty address selects the
// in-memory session store.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"APPCORE_REDIS_ADDR"`
	Password string `yaml:"password" env:"APPCORE_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"APPCORE_REDIS_DB"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"APPCORE_LOG_LEVEL"`
	Format string `yaml:"format" env:"APPCORE_LOG_FORMAT"`
	Output string `yaml:"output" env:"APPCORE_LOG_OUTPUT"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Server:  ServerConfig{Port: 8080},
		Logging: LoggingConfig{Level: "info", Format: "json", Output: "stdout"},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// APPCORE_CONFIG (if any), then environment overrides.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("APPCORE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("apply environment overrides: %w", err)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	return cfg, nil
}
