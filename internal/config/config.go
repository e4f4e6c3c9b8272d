package config

import (
	"fmt"
	"os"
)

// Config is the process-wide configuration.
type Config struct {
	Port      string // server port (8080)
	JWTSecret string // JWT signing secret
	GoEnv     string // dev/prod
}

// Load reads environment variables.
func Load() (Config, error) {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		GoEnv:     os.Getenv("GO_ENV"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}

	return cfg, nil
}
