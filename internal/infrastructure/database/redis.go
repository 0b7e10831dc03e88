package database

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates a Redis client for the shared rate-limit counter store.
func NewRedis(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

// Ping verifies the connection before the service starts taking traffic.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
