package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// Cleaner is the periodic sweep removing expired OTP codes (verified or not)
// and expired sessions.
type Cleaner struct {
	otpRepo     domain.OTPRepository
	sessionRepo domain.SessionRepository
	interval    time.Duration
	logger      *slog.Logger

	stop chan struct{}
	done chan struct{}
}

// NewCleaner creates a new cleanup sweeper.
func NewCleaner(otpRepo domain.OTPRepository, sessionRepo domain.SessionRepository, interval time.Duration, logger *slog.Logger) *Cleaner {
	return &Cleaner{
		otpRepo:     otpRepo,
		sessionRepo: sessionRepo,
		interval:    interval,
		logger:      logger,
	}
}

// Start launches the sweep loop. Call Stop on shutdown.
func (c *Cleaner) Start(ctx context.Context) {
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			case <-ticker.C:
				c.Sweep(ctx)
			}
		}
	}()
}

// Stop terminates the sweep loop and waits for it to finish.
func (c *Cleaner) Stop() {
	if c.stop == nil {
		return
	}
	close(c.stop)
	<-c.done
	c.stop = nil
}

// Sweep runs one pass immediately. Exposed so tests and Start share the same
// path.
func (c *Cleaner) Sweep(ctx context.Context) {
	now := time.Now()

	codes, err := c.otpRepo.DeleteExpired(ctx, now)
	if err != nil {
		c.logger.Error("otp sweep failed", slog.String("error", err.Error()))
	}
	sessions, err := c.sessionRepo.DeleteExpired(ctx, now)
	if err != nil {
		c.logger.Error("session sweep failed", slog.String("error", err.Error()))
	}

	if codes > 0 || sessions > 0 {
		c.logger.Info("cleanup sweep finished",
			slog.Int64("expired_codes", codes),
			slog.Int64("expired_sessions", sessions))
	}
}
