package tasks

import "time"

// Config holds the worker settings of the task queue.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 2
	Workers int

	// ReleaseAfter is when claimed tasks that never finished are handed to
	// another worker. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often retained tasks past their retention are
	// removed. Default: 1h
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: 1 * time.Hour,
	}
}
