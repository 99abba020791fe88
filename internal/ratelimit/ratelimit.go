// Package ratelimit counts requests per client over a fixed window.
package ratelimit

import (
	"context"
	"time"
)

// Config holds rate limiter settings
type Config struct {
	Requests int           // Requests allowed per window
	Window   time.Duration // Window length
}

// DefaultConfig returns 100 requests per 15 minutes
func DefaultConfig() Config {
	return Config{
		Requests: 100,
		Window:   15 * time.Minute,
	}
}

// Decision is the outcome of one request against a client's window
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time // When the current window ends
}

// Limiter decides whether a client may make another request
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

func decide(cfg Config, count int, reset time.Time) Decision {
	remaining := cfg.Requests - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= cfg.Requests,
		Limit:     cfg.Requests,
		Remaining: remaining,
		Reset:     reset,
	}
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Requests <= 0 {
		cfg.Requests = def.Requests
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	return cfg
}
