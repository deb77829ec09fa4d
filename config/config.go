// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds everything the server binary needs. It is populated once at
// startup and never mutated afterwards.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// Environment is "development" or "production". Production turns on the
	// Secure cookie attribute.
	Environment string

	// TokenSecret signs session tokens. Required.
	TokenSecret string

	// DatabaseURL is the PostgreSQL connection string. When empty the server
	// falls back to in-memory storage.
	DatabaseURL string

	// ClientOrigins are the CORS allow-listed origins, comma separated in the
	// CLIENT_ORIGIN variable.
	ClientOrigins []string
}

// Load reads the environment, layering an optional .env file underneath.
// Variables already set in the process environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "5000"),
		Environment:   getEnv("APP_ENV", EnvDevelopment),
		TokenSecret:   os.Getenv("TOKEN_SECRET"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ClientOrigins: splitOrigins(getEnv("CLIENT_ORIGIN", "http://localhost:5173")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("TOKEN_SECRET is required")
	}
	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		return fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Environment)
	}
	if c.Environment == EnvProduction && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required in production")
	}
	return nil
}

// Production reports whether the server runs with production hardening.
func (c *Config) Production() bool {
	return c.Environment == EnvProduction
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
