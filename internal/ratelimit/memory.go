// Package ratelimit provides windowed request counters keyed by identity and
// scope. The in-memory limiter is the single-process default; the Redis
// limiter shares counters across processes.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a fixed-window counter over a mutex-guarded map. Counter
// updates are read-modify-write under the lock so concurrent bursts never
// undercount.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time

	stop chan struct{}
	done chan struct{}
}

// NewMemoryLimiter creates an in-memory limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (l *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	l.now = now
	return l
}

// Check implements domain.RateLimiter. Each call counts as one request
// against the window.
func (l *MemoryLimiter) Check(ctx context.Context, key string, max int, window time.Duration) (*domain.RateLimitResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &entry{count: 0, resetAt: now.Add(window)}
		l.entries[key] = e
	}

	e.count++
	remaining := max - e.count
	if remaining < 0 {
		remaining = 0
	}

	return &domain.RateLimitResult{
		Limited:   e.count > max,
		Remaining: remaining,
		ResetAt:   e.resetAt,
	}, nil
}

// StartSweep evicts expired windows every interval to bound memory. Call
// StopSweep on shutdown.
func (l *MemoryLimiter) StartSweep(interval time.Duration) {
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go func() {
		defer close(l.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-l.stop:
				return
			case <-ticker.C:
				l.evictExpired()
			}
		}
	}()
}

// StopSweep stops the background eviction goroutine.
func (l *MemoryLimiter) StopSweep() {
	if l.stop == nil {
		return
	}
	close(l.stop)
	<-l.done
	l.stop = nil
}

func (l *MemoryLimiter) evictExpired() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, key)
		}
	}
}

// Len reports the number of tracked windows, for tests and introspection.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

var _ domain.RateLimiter = (*MemoryLimiter)(nil)
