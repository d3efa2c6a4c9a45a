package ratelimiter

import (
	"context"
	"secureauth/internal/core/domain/logging"
	ratelimiter "secureauth/internal/core/domain/rate_limiter"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	server  *miniredis.Miniredis
	client  *redis.Client
	logger  *logging.FakeLogger
	now     time.Time
	limiter *Redis
}

func (suite *testSuite) SetupTest() {
	suite.server = miniredis.RunT(suite.T())
	suite.client = redis.NewClient(&redis.Options{Addr: suite.server.Addr()})
	suite.logger = logging.NewFakeLogger()
	suite.now = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	suite.limiter = NewRedis(suite.client, suite.logger, func() time.Time { return suite.now })
}

func (suite *testSuite) TearDownTest() {
	suite.client.Close()
}

func TestRedisRateLimiter(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestAllowedUpToLimit() {
	assert := suite.Require()
	limit := ratelimiter.Limit{Value: 3, Interval: ratelimiter.Hour}
	key := ratelimiter.Key("register", "a@x.io")

	for i := 0; i < 3; i++ {
		assert.True(suite.limiter.CheckLimit(context.Background(), key, limit).IsAllowed)
	}
	assert.False(suite.limiter.CheckLimit(context.Background(), key, limit).IsAllowed)
}

func (suite *testSuite) TestKeysAreIndependent() {
	assert := suite.Require()
	limit := ratelimiter.Limit{Value: 1, Interval: ratelimiter.Minute}

	assert.True(suite.limiter.CheckLimit(context.Background(), ratelimiter.Key("forgot", "a@x.io"), limit).IsAllowed)
	assert.True(suite.limiter.CheckLimit(context.Background(), ratelimiter.Key("forgot", "b@x.io"), limit).IsAllowed)
	assert.False(suite.limiter.CheckLimit(context.Background(), ratelimiter.Key("forgot", "a@x.io"), limit).IsAllowed)
}

func (suite *testSuite) TestNextWindowResetsCounter() {
	assert := suite.Require()
	limit := ratelimiter.Limit{Value: 1, Interval: ratelimiter.Hour}
	key := ratelimiter.Key("register", "a@x.io")

	assert.True(suite.limiter.CheckLimit(context.Background(), key, limit).IsAllowed)
	assert.False(suite.limiter.CheckLimit(context.Background(), key, limit).IsAllowed)

	suite.now = suite.now.Add(time.Hour)
	assert.True(suite.limiter.CheckLimit(context.Background(), key, limit).IsAllowed)
}

func (suite *testSuite) TestCounterExpires() {
	assert := suite.Require()
	limit := ratelimiter.Limit{Value: 1, Interval: ratelimiter.Minute}
	key := ratelimiter.Key("register", "a@x.io")

	assert.True(suite.limiter.CheckLimit(context.Background(), key, limit).IsAllowed)
	suite.server.FastForward(2 * time.Minute)
	assert.Equal(0, len(suite.server.Keys()))
}

func (suite *testSuite) TestRedisFailureAllowsRequest() {
	assert := suite.Require()
	suite.server.Close()

	result := suite.limiter.CheckLimit(
		context.Background(),
		ratelimiter.Key("register", "a@x.io"),
		ratelimiter.Limit{Value: 1, Interval: ratelimiter.Hour},
	)
	assert.True(result.IsAllowed)
	assert.Equal(1, suite.logger.CountByLevel(logging.ERROR))
}

func TestDisabledAlwaysAllows(t *testing.T) {
	limiter := NewDisabled()
	for i := 0; i < 10; i++ {
		result := limiter.CheckLimit(
			context.Background(), "k", ratelimiter.Limit{Value: 1, Interval: ratelimiter.Minute},
		)
		if !result.IsAllowed {
			t.Fatal("disabled limiter must allow")
		}
	}
}
