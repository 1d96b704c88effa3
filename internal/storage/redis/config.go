package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// FinishedSessionTTL expires completed/abandoned sessions once their
	// stats have been applied; zero keeps them forever
	FinishedSessionTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:                "redis://localhost:6379",
		PoolSize:           10,
		MinIdleConns:       2,
		FinishedSessionTTL: 30 * 24 * time.Hour,
	}
}
