package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// OTPConfig carries the tunables of the OTP manager.
type OTPConfig struct {
	TTL         time.Duration
	Length      int
	MaxAttempts int
	HourlyCap   int
}

// OTPService implements domain.OTPService over the relational store. It owns
// attempt counting, expiry and the at-most-one-active invariant; issuance is
// gated by the hourly rate limit per (user, purpose).
type OTPService struct {
	otpRepo  domain.OTPRepository
	userRepo domain.UserRepository
	notifier domain.NotificationService
	limiter  domain.RateLimiter
	config   OTPConfig
	logger   *slog.Logger
	now      func() time.Time
}

// NewOTPService creates a new OTP manager.
func NewOTPService(
	otpRepo domain.OTPRepository,
	userRepo domain.UserRepository,
	notifier domain.NotificationService,
	limiter domain.RateLimiter,
	config OTPConfig,
	logger *slog.Logger,
) *OTPService {
	return &OTPService{
		otpRepo:  otpRepo,
		userRepo: userRepo,
		notifier: notifier,
		limiter:  limiter,
		config:   config,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *OTPService) WithClock(now func() time.Time) *OTPService {
	s.now = now
	return s
}

// Generate implements domain.OTPService. Generating a new code deletes any
// prior unverified code for the same (user, purpose). Delivery failures are
// logged and never fail the operation.
func (s *OTPService) Generate(ctx context.Context, userID uint, purpose domain.OTPPurpose) (*domain.OTPIssue, error) {
	if !purpose.Valid() {
		return nil, domain.ErrInvalidPurpose
	}

	limitKey := fmt.Sprintf("otp:%d:%s", userID, purpose)
	result, err := s.limiter.Check(ctx, limitKey, s.config.HourlyCap, time.Hour)
	if err != nil {
		return nil, fmt.Errorf("otp issuance limit check: %w", err)
	}
	if result.Limited {
		retryAfter := int64(time.Until(result.ResetAt).Seconds())
		if retryAfter < 0 {
			retryAfter = 0
		}
		return nil, domain.RateLimitedError(domain.ErrOTPRateLimited, retryAfter)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, fmt.Errorf("generate otp code: %w", err)
	}

	otp := &domain.OTPCode{
		UserID:    userID,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: s.now().Add(s.config.TTL),
		CreatedAt: s.now(),
	}
	if err := s.otpRepo.ReplaceActive(ctx, otp); err != nil {
		return nil, fmt.Errorf("store otp code: %w", err)
	}

	if err := s.notifier.SendOTPMessage(ctx, user, code, purpose); err != nil {
		s.logger.Error("otp delivery failed",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("purpose", string(purpose)),
			slog.String("error", err.Error()))
	}

	return &domain.OTPIssue{Code: code, ExpiresAt: otp.ExpiresAt}, nil
}

// Verify implements domain.OTPService. The attempt budget is checked before
// the code comparison, so once it is exhausted even the correct code fails
// and the record is removed to force re-issuance.
func (s *OTPService) Verify(ctx context.Context, userID uint, code string, purpose domain.OTPPurpose) error {
	otp, err := s.otpRepo.FindActive(ctx, userID, purpose, s.now())
	if err != nil {
		return err
	}

	if otp.Attempts >= s.config.MaxAttempts {
		if err := s.otpRepo.Delete(ctx, otp.ID); err != nil {
			return fmt.Errorf("delete exhausted otp: %w", err)
		}
		return domain.ErrOTPMaxAttempts
	}

	if otp.Code != code {
		if err := s.otpRepo.IncrementAttempts(ctx, otp.ID); err != nil {
			return fmt.Errorf("record otp attempt: %w", err)
		}
		return domain.MismatchError(s.config.MaxAttempts - otp.Attempts - 1)
	}

	if err := s.otpRepo.MarkVerified(ctx, otp.ID); err != nil {
		return fmt.Errorf("mark otp verified: %w", err)
	}
	return nil
}

// Consume deletes codes for the pair once the dependent action completed.
func (s *OTPService) Consume(ctx context.Context, userID uint, purpose domain.OTPPurpose) error {
	return s.otpRepo.DeleteByPurpose(ctx, userID, purpose)
}

// generateCode draws a code uniformly over [10^(n-1), 10^n) from a
// cryptographically secure source.
func (s *OTPService) generateCode() (string, error) {
	length := s.config.Length
	if length <= 0 {
		length = 6
	}
	low := big.NewInt(1)
	for i := 1; i < length; i++ {
		low.Mul(low, big.NewInt(10))
	}
	span := new(big.Int).Mul(low, big.NewInt(9))

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return n.Add(n, low).String(), nil
}

var _ domain.OTPService = (*OTPService)(nil)
