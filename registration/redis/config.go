package redis

import "time"

// Config holds Redis connection settings for the registration store.
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	PoolSize     int
	MinIdleConns int

	// TTL of a staged registration; abandoned flows expire after it.
	TTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379/0",
		PoolSize:     10,
		MinIdleConns: 2,
		TTL:          time.Hour,
	}
}
