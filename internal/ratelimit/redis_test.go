package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	_, client := setupTestRedisWithServer(t)
	return client
}

func setupTestRedisWithServer(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisLimiterBoundary(t *testing.T) {
	limiter := NewRedisLimiter(setupTestRedis(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.Check(ctx, "login:1", 3, time.Minute)
		if err != nil {
			t.Fatalf("Check() error: %v", err)
		}
		if result.Limited {
			t.Fatalf("call %d limited before the cap", i+1)
		}
	}

	result, err := limiter.Check(ctx, "login:1", 3, time.Minute)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if !result.Limited {
		t.Error("call past the cap must be limited")
	}
}

func TestRedisLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewRedisLimiter(setupTestRedis(t))
	ctx := context.Background()

	limiter.Check(ctx, "a", 1, time.Minute)
	if r, _ := limiter.Check(ctx, "a", 1, time.Minute); !r.Limited {
		t.Fatal("second call on key a not limited")
	}
	if r, err := limiter.Check(ctx, "b", 1, time.Minute); err != nil || r.Limited {
		t.Errorf("key b must start fresh: limited=%v err=%v", r.Limited, err)
	}
}

func TestRedisLimiterWindowExpires(t *testing.T) {
	mr, client := setupTestRedisWithServer(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	limiter.Check(ctx, "key", 1, time.Minute)
	if r, _ := limiter.Check(ctx, "key", 1, time.Minute); !r.Limited {
		t.Fatal("second call in window not limited")
	}

	mr.FastForward(61 * time.Second)

	r, err := limiter.Check(ctx, "key", 1, time.Minute)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if r.Limited {
		t.Error("call in a fresh window must not be limited")
	}
}

func TestRedisLimiterRemaining(t *testing.T) {
	limiter := NewRedisLimiter(setupTestRedis(t))
	ctx := context.Background()

	r, err := limiter.Check(ctx, "key", 5, time.Minute)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if r.Remaining != 4 {
		t.Errorf("Remaining = %d, want 4", r.Remaining)
	}
}
