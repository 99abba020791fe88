package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/gamevault/internal/dependencies/clock"
)

const keyPrefix = "gamevault:ratelimit:"

// RedisLimiter shares counters across server instances through Redis
type RedisLimiter struct {
	cfg    Config
	client *redis.Client
	clock  clock.Clock
}

// Ensure RedisLimiter implements the interface
var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter creates a limiter over an existing client
func NewRedisLimiter(cfg Config, client *redis.Client, clk clock.Clock) *RedisLimiter {
	return &RedisLimiter{
		cfg:    withDefaults(cfg),
		client: client,
		clock:  clk,
	}
}

// Allow counts one request for key.
// The counter is created with the window as its expiry, so later requests never extend it.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := keyPrefix + key

	pipe := l.client.TxPipeline()
	pipe.SetNX(ctx, redisKey, 0, l.cfg.Window)
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("failed to count request: %w", err)
	}

	remaining := ttl.Val()
	if remaining <= 0 {
		remaining = l.cfg.Window
	}

	return decide(l.cfg, int(incr.Val()), l.clock.Now().Add(remaining)), nil
}
