package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// AuthService implements domain.AuthService: passwordless registration and
// login built on the OTP manager and the session service.
type AuthService struct {
	userRepo domain.UserRepository
	otpSvc   domain.OTPService
	sessions domain.SessionService
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo domain.UserRepository,
	otpSvc domain.OTPService,
	sessions domain.SessionService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		otpSvc:   otpSvc,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Register implements domain.AuthService. Public registration only creates
// buyers and sellers; administrator accounts are provisioned through the
// admin service. The new account starts in PendingVerification and receives
// an email verification code.
func (s *AuthService) Register(ctx context.Context, email, phone, name string, role domain.Role, locale string) (*domain.User, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	phone, err = NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleBuyer && role != domain.RoleSeller {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if phone != "" {
		if _, err := s.userRepo.FindByPhone(ctx, phone); err == nil {
			return nil, domain.ErrPhoneTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	user := &domain.User{
		Email:  email,
		Phone:  phone,
		Name:   name,
		Role:   role,
		Status: domain.StatusPendingVerification,
		Locale: locale,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Delivery is best-effort at this point; the caller can re-request a
	// code through the public endpoint.
	if _, err := s.otpSvc.Generate(ctx, user.ID, domain.PurposeEmailVerification); err != nil {
		s.logger.Error("initial verification code not issued",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()))
	}

	return user, nil
}

// RequestOTP implements domain.AuthService. Re-issues a code for the given
// purpose; issuing is idempotent-safe because generation replaces any prior
// active code.
func (s *AuthService) RequestOTP(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	email, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	if !purpose.Valid() {
		return domain.ErrInvalidPurpose
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	switch purpose {
	case domain.PurposeEmailVerification:
		if user.EmailVerified.Verified() {
			return nil // nothing to verify, swallow silently
		}
	case domain.PurposePhoneVerification:
		if user.Phone == "" {
			return domain.ErrInvalidPhone
		}
	case domain.PurposeLogin:
		if err := s.loginEligibility(user); err != nil {
			return err
		}
	}

	_, err = s.otpSvc.Generate(ctx, user.ID, purpose)
	return err
}

// VerifyEmail implements domain.AuthService. A successful verification
// activates a pending account and consumes the code.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	email, err := NormalizeEmail(email)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.otpSvc.Verify(ctx, user.ID, code, domain.PurposeEmailVerification); err != nil {
		return err
	}

	now := s.now()
	if err := s.userRepo.MarkEmailVerified(ctx, user.ID, now); err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}
	if user.Status == domain.StatusPendingVerification {
		if err := s.userRepo.UpdateStatus(ctx, user.ID, domain.StatusActive); err != nil {
			return fmt.Errorf("activate user: %w", err)
		}
	}

	if err := s.otpSvc.Consume(ctx, user.ID, domain.PurposeEmailVerification); err != nil {
		s.logger.Warn("verified email code not consumed",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()))
	}
	return nil
}

// RequestLogin implements domain.AuthService.
func (s *AuthService) RequestLogin(ctx context.Context, email string) error {
	return s.RequestOTP(ctx, email, domain.PurposeLogin)
}

// Login implements domain.AuthService. A verified login code is consumed,
// the session is created and a token pair is minted.
func (s *AuthService) Login(ctx context.Context, email, code, userAgent, ip string) (*domain.AuthResult, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.loginEligibility(user); err != nil {
		return nil, err
	}

	if err := s.otpSvc.Verify(ctx, user.ID, code, domain.PurposeLogin); err != nil {
		return nil, err
	}
	if err := s.otpSvc.Consume(ctx, user.ID, domain.PurposeLogin); err != nil {
		s.logger.Warn("login code not consumed",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()))
	}

	now := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("last login not recorded",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()))
	}

	return s.sessions.Create(ctx, user, userAgent, ip)
}

// Refresh implements domain.AuthService.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	return s.sessions.Refresh(ctx, refreshToken)
}

// Logout implements domain.AuthService.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Invalidate(ctx, sessionID)
}

// Profile implements domain.AuthService.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// loginEligibility rejects users who may not authenticate: banned and
// inactive accounts, and accounts that never verified their email.
func (s *AuthService) loginEligibility(user *domain.User) error {
	if user.Status == domain.StatusPendingVerification {
		return domain.ErrEmailNotVerified
	}
	if !user.Status.CanAuthenticate() {
		return domain.ErrAccountNotActive
	}
	return nil
}

var _ domain.AuthService = (*AuthService)(nil)
