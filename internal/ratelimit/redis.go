package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

const fixedWindowLua = `
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`

// RedisLimiter is a fixed-window counter backed by Redis, the shared-store
// variant for multi-process deployments. INCR and the window TTL run in one
// Lua script so the first hit and its expiry are atomic.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	script *redis.Script
}

// NewRedisLimiter creates a Redis-backed limiter.
func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: "ratelimit:",
		script: redis.NewScript(fixedWindowLua),
	}
}

// Check implements domain.RateLimiter.
func (l *RedisLimiter) Check(ctx context.Context, key string, max int, window time.Duration) (*domain.RateLimitResult, error) {
	redisKey := l.prefix + key

	res, err := l.script.Run(ctx, l.client, []string{redisKey}, window.Milliseconds()).Int()
	if err != nil {
		return nil, fmt.Errorf("ratelimit incr: %w", err)
	}
	count := res

	ttl, err := l.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("ratelimit ttl: %w", err)
	}
	if ttl < 0 {
		ttl = window
	}

	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}

	return &domain.RateLimitResult{
		Limited:   count > max,
		Remaining: remaining,
		ResetAt:   time.Now().Add(ttl),
	}, nil
}

var _ domain.RateLimiter = (*RedisLimiter)(nil)
