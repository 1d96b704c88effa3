package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all server settings, parsed from the environment once at
// startup and injected explicitly from there on.
type Config struct {
	// Host and Port for the HTTP listener
	Host string `env:"SENDA_HOST" envDefault:""`
	Port int    `env:"SENDA_PORT" envDefault:"8080"`

	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string `env:"SENDA_STORAGE_TYPE" envDefault:"memory"`

	// RedisURL is required when StorageType is "redis"
	RedisURL string `env:"SENDA_REDIS_URL"`

	// Duration clamp bounds for level timing
	DurationFloorSeconds   int64 `env:"SENDA_DURATION_FLOOR_SECONDS" envDefault:"1"`
	DurationCeilingSeconds int64 `env:"SENDA_DURATION_CEILING_SECONDS" envDefault:"3600"`

	// AdminToken grants read-only access to any session when presented;
	// empty disables admin reads
	AdminToken string `env:"SENDA_ADMIN_TOKEN"`
}

// FromEnv loads configuration from environment variables
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
