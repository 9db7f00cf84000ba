package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds server configuration read from the environment
type Config struct {
	Host        string `env:"PQACCT_HOST"`
	Port        int    `env:"PQACCT_PORT" envDefault:"8080"`
	StorageType string `env:"PQACCT_STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"PQACCT_REDIS_URL"`
	PostgresDSN string `env:"PQACCT_POSTGRES_DSN"`
}

// Load reads configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse server env: %w", err)
	}
	return cfg, nil
}
