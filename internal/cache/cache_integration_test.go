//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"pangate/internal/cache"
	"pangate/pkg/platform/sentinel"
	"pangate/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.Client
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.cache = cache.New(s.redis.Client)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestSetAppliesTTL() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Set(ctx, "pan:k", "true", 90*time.Second))

	ttl, err := s.redis.Client.TTL(ctx, "pan:k").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, 90*time.Second)
}

func (s *RedisCacheSuite) TestSetWithoutExpiryPersists() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Set(ctx, "pan:k", "false", 0))

	ttl, err := s.redis.Client.TTL(ctx, "pan:k").Result()
	s.Require().NoError(err)
	s.Equal(time.Duration(-1), ttl)
}

func (s *RedisCacheSuite) TestGetAndDelete() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Set(ctx, "pan:k", "true", time.Minute))

	v, err := s.cache.Get(ctx, "pan:k")
	s.Require().NoError(err)
	s.Equal("true", v)

	s.Require().NoError(s.cache.Delete(ctx, "pan:k"))
	_, err = s.cache.Get(ctx, "pan:k")
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.NoError(s.cache.Delete(ctx, "pan:k"))
}
