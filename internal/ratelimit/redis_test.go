package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamevault/internal/dependencies/mocks"
)

type RedisLimiterSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	client  *redis.Client
	clock   *mocks.MockClock
	limiter *RedisLimiter
	ctx     context.Context
}

func TestRedisLimiterSuite(t *testing.T) {
	suite.Run(t, new(RedisLimiterSuite))
}

func (s *RedisLimiterSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.clock = mocks.NewMockClock(time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC))
	s.limiter = NewRedisLimiter(Config{Requests: 2, Window: time.Minute}, s.client, s.clock)
	s.ctx = context.Background()
}

func (s *RedisLimiterSuite) TearDownTest() {
	_ = s.client.Close()
}

func (s *RedisLimiterSuite) TestAllowsUpToLimit() {
	d, err := s.limiter.Allow(s.ctx, "1.2.3.4")
	s.Require().NoError(err)
	s.True(d.Allowed)
	s.Equal(2, d.Limit)
	s.Equal(1, d.Remaining)
	s.Equal(s.clock.Now().Add(time.Minute), d.Reset)

	d, err = s.limiter.Allow(s.ctx, "1.2.3.4")
	s.Require().NoError(err)
	s.True(d.Allowed)
	s.Equal(0, d.Remaining)

	d, err = s.limiter.Allow(s.ctx, "1.2.3.4")
	s.Require().NoError(err)
	s.False(d.Allowed)
	s.Equal(0, d.Remaining)
}

func (s *RedisLimiterSuite) TestCounterExpiresWithWindow() {
	_, err := s.limiter.Allow(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal(time.Minute, s.mini.TTL(keyPrefix+"a"))

	// Later requests leave the expiry alone
	s.mini.FastForward(20 * time.Second)
	_, err = s.limiter.Allow(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal(40*time.Second, s.mini.TTL(keyPrefix+"a"))

	s.mini.FastForward(40 * time.Second)
	s.False(s.mini.Exists(keyPrefix + "a"))

	d, err := s.limiter.Allow(s.ctx, "a")
	s.Require().NoError(err)
	s.True(d.Allowed)
	s.Equal(1, d.Remaining)
}

func (s *RedisLimiterSuite) TestKeysAreIndependent() {
	for i := 0; i < 3; i++ {
		_, err := s.limiter.Allow(s.ctx, "a")
		s.Require().NoError(err)
	}

	d, err := s.limiter.Allow(s.ctx, "b")
	s.Require().NoError(err)
	s.True(d.Allowed)
}

func (s *RedisLimiterSuite) TestRedisUnavailable() {
	s.mini.Close()

	_, err := s.limiter.Allow(s.ctx, "a")
	s.Error(err)
}
