package mocks

import (
	"context"
	"time"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// MockRateLimiter implements domain.RateLimiter for testing.
type MockRateLimiter struct {
	CheckFunc func(ctx context.Context, key string, max int, window time.Duration) (*domain.RateLimitResult, error)
}

// NewMockRateLimiter creates a mock that never limits by default.
func NewMockRateLimiter() *MockRateLimiter {
	return &MockRateLimiter{}
}

func (m *MockRateLimiter) Check(ctx context.Context, key string, max int, window time.Duration) (*domain.RateLimitResult, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, key, max, window)
	}
	return &domain.RateLimitResult{Limited: false, Remaining: max - 1, ResetAt: time.Now().Add(window)}, nil
}

var _ domain.RateLimiter = (*MockRateLimiter)(nil)
