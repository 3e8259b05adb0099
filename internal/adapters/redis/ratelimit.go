package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rafaelleal24/rocketshoes/internal/adapters/http/middleware"
)

// fixed window counter; returns the hit count and the window's remaining ttl in ms
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('PTTL', KEYS[1])}
`)

type RateLimiter struct {
	client *Client
}

func NewRateLimiter(client *Client) middleware.RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (middleware.RateLimitResult, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)
	values, err := rateLimitScript.Run(ctx, r.client.rdb, []string{redisKey}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return middleware.RateLimitResult{}, err
	}
	if len(values) != 2 {
		return middleware.RateLimitResult{}, fmt.Errorf("unexpected rate limit reply %v", values)
	}

	count, ttl := int(values[0]), time.Duration(values[1])*time.Millisecond
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return middleware.RateLimitResult{
		Allowed:   count <= limit,
		Remaining: remaining,
		ResetIn:   ttl,
	}, nil
}
