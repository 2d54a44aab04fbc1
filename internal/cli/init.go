// Package cli provides common CLI initialization utilities shared by
// the cmd entrypoints.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"bolso/internal/config"
	"bolso/internal/log"
)

// SetupLogger initializes structured logging with default settings and
// installs the logger as the process default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}
