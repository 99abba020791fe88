package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamevault/internal/dependencies/mocks"
)

func newMemoryLimiter(t *testing.T, requests int, window time.Duration) (*MemoryLimiter, *mocks.MockClock) {
	t.Helper()
	clk := mocks.NewMockClock(time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC))
	l := NewMemoryLimiter(Config{Requests: requests, Window: window}, clk)
	t.Cleanup(l.Stop)
	return l, clk
}

func TestMemoryLimiterDefaults(t *testing.T) {
	l := NewMemoryLimiter(Config{}, mocks.NewMockClock(time.Now()))
	defer l.Stop()

	assert.Equal(t, 100, l.cfg.Requests)
	assert.Equal(t, 15*time.Minute, l.cfg.Window)
}

func TestMemoryLimiterAllowsUpToLimit(t *testing.T) {
	l, clk := newMemoryLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d", i+1)
		assert.Equal(t, 3, d.Limit)
		assert.Equal(t, 2-i, d.Remaining)
		assert.Equal(t, clk.Now().Add(time.Minute), d.Reset)
	}

	d, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	l, _ := newMemoryLimiter(t, 1, time.Minute)
	ctx := context.Background()

	d, _ := l.Allow(ctx, "a")
	assert.True(t, d.Allowed)
	d, _ = l.Allow(ctx, "a")
	assert.False(t, d.Allowed)

	d, _ = l.Allow(ctx, "b")
	assert.True(t, d.Allowed)
}

func TestMemoryLimiterWindowResets(t *testing.T) {
	l, clk := newMemoryLimiter(t, 1, time.Minute)
	ctx := context.Background()

	d, _ := l.Allow(ctx, "a")
	assert.True(t, d.Allowed)

	// Requests inside the window do not extend it
	clk.Advance(30 * time.Second)
	d, _ = l.Allow(ctx, "a")
	assert.False(t, d.Allowed)

	clk.Advance(30 * time.Second)
	d, _ = l.Allow(ctx, "a")
	assert.True(t, d.Allowed)
	assert.Equal(t, clk.Now().Add(time.Minute), d.Reset)
}

func TestMemoryLimiterCleanupDropsExpiredWindows(t *testing.T) {
	l, clk := newMemoryLimiter(t, 5, time.Minute)
	ctx := context.Background()

	_, _ = l.Allow(ctx, "a")
	clk.Advance(time.Minute)
	_, _ = l.Allow(ctx, "b")

	l.cleanupExpired()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.windows, "a")
	assert.Contains(t, l.windows, "b")
}

func TestMemoryLimiterStopIsIdempotent(t *testing.T) {
	l := NewMemoryLimiter(DefaultConfig(), mocks.NewMockClock(time.Now()))
	l.Stop()
	l.Stop()
}
