package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/mcoot/gamevault/internal/dependencies/clock"
)

// MemoryLimiter keeps a counter per key in process memory
type MemoryLimiter struct {
	cfg   Config
	clock clock.Clock

	mu       sync.Mutex
	windows  map[string]*window
	stopChan chan struct{}
	stopOnce sync.Once
}

type window struct {
	count int
	reset time.Time
}

// Ensure MemoryLimiter implements the interface
var _ Limiter = (*MemoryLimiter)(nil)

// NewMemoryLimiter creates a limiter and starts its cleanup loop. Call Stop when done.
func NewMemoryLimiter(cfg Config, clk clock.Clock) *MemoryLimiter {
	l := &MemoryLimiter{
		cfg:      withDefaults(cfg),
		clock:    clk,
		windows:  make(map[string]*window),
		stopChan: make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Stop ends the cleanup loop
func (l *MemoryLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
}

func (l *MemoryLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.cfg.Window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanupExpired()
		case <-l.stopChan:
			return
		}
	}
}

func (l *MemoryLimiter) cleanupExpired() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	for key, w := range l.windows {
		if !now.Before(w.reset) {
			delete(l.windows, key)
		}
	}
}

// Allow counts one request for key
func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.reset) {
		w = &window{reset: now.Add(l.cfg.Window)}
		l.windows[key] = w
	}
	w.count++

	return decide(l.cfg, w.count, w.reset), nil
}
