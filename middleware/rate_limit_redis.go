package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript mirrors SlidingWindowLimiter.IsLimited on a sorted
// set scored by milliseconds. Returns 1 when limited.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local max = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
if redis.call('ZCARD', key) >= max then
	return 1
end
redis.call('ZADD', key, ARGV[1], ARGV[4])
redis.call('PEXPIRE', key, ARGV[2])
return 0
`)

// RedisWindowLimiter shares the sliding window between processes.
type RedisWindowLimiter struct {
	client redis.Cmdable
	window time.Duration
	max    int
	prefix string
	now    Clock
}

func NewRedisWindowLimiter(client redis.Cmdable, window time.Duration, max int, clock Clock) (*RedisWindowLimiter, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if window < time.Millisecond {
		return nil, fmt.Errorf("rate limit window must be at least 1ms, got %s", window)
	}
	if max <= 0 {
		return nil, fmt.Errorf("rate limit max requests must be positive, got %d", max)
	}
	if clock == nil {
		clock = time.Now
	}

	return &RedisWindowLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "ratelimit:window:",
		now:    clock,
	}, nil
}

func (l *RedisWindowLimiter) Limited(ctx context.Context, identity string) (bool, error) {
	nowMs := l.now().UnixMilli()
	member := fmt.Sprintf("%d-%s", nowMs, uuid.NewString())

	limited, err := slidingWindowScript.Run(ctx, l.client,
		[]string{l.prefix + identity},
		nowMs, l.window.Milliseconds(), l.max, member,
	).Int()
	if err != nil {
		return false, fmt.Errorf("sliding window script: %w", err)
	}
	return limited == 1, nil
}

func (l *RedisWindowLimiter) Max() int {
	return l.max
}
