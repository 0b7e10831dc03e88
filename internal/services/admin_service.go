package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// BootstrapConfig identifies the default super administrator created on
// first startup.
type BootstrapConfig struct {
	SuperAdminEmail string
	SuperAdminPhone string
	SuperAdminName  string
}

// AdminService implements domain.AdminService: privileged workflows over the
// role state machine. Every mutation that bans, deactivates or demotes also
// revokes the target's standing sessions.
type AdminService struct {
	userRepo  domain.UserRepository
	sessions  domain.SessionService
	notifier  domain.NotificationService
	bootstrap BootstrapConfig
	logger    *slog.Logger
	now       func() time.Time
}

// NewAdminService creates a new admin service.
func NewAdminService(
	userRepo domain.UserRepository,
	sessions domain.SessionService,
	notifier domain.NotificationService,
	bootstrap BootstrapConfig,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		userRepo:  userRepo,
		sessions:  sessions,
		notifier:  notifier,
		bootstrap: bootstrap,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *AdminService) WithClock(now func() time.Time) *AdminService {
	s.now = now
	return s
}

// CreateAdmin implements domain.AdminService. Administrators are provisioned
// out-of-band, so the account is created pre-verified and Active.
func (s *AdminService) CreateAdmin(ctx context.Context, email, phone, name string, role domain.Role, locale string) (*domain.User, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	phone, err = NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	if !role.IsAdministrative() {
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

	now := s.now()
	user := &domain.User{
		Email:         email,
		Phone:         phone,
		Name:          name,
		Role:          role,
		Status:        domain.StatusActive,
		Locale:        locale,
		EmailVerified: domain.VerifiedAt(now),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	if err := s.notifier.SendAdminWelcome(ctx, user.Email, user.Name, user.Locale); err != nil {
		s.logger.Error("admin welcome not delivered",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()))
	}

	s.logger.Info("administrator created",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("role", string(role)))
	return user, nil
}

// Promote implements domain.AdminService. Promoting forces the account
// Active so a freshly promoted administrator can sign in immediately.
func (s *AdminService) Promote(ctx context.Context, userID uint, role domain.Role) error {
	if !role.IsAdministrative() {
		return domain.ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role.IsAdministrative() {
		return domain.ErrAlreadyAdmin
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return fmt.Errorf("promote user %d: %w", userID, err)
	}
	if err := s.userRepo.UpdateStatus(ctx, userID, domain.StatusActive); err != nil {
		return fmt.Errorf("activate promoted user %d: %w", userID, err)
	}

	if err := s.notifier.SendPromotionNotice(ctx, user.Email, user.Name, user.Locale, role); err != nil {
		s.logger.Error("promotion notice not delivered",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()))
	}

	s.logger.Info("user promoted",
		slog.Uint64("user_id", uint64(userID)),
		slog.String("role", string(role)))
	return nil
}

// Demote implements domain.AdminService. Only a SuperAdmin may demote, never
// themselves; the demoted account drops to Buyer and loses every session.
func (s *AdminService) Demote(ctx context.Context, userID, performedBy uint) error {
	if userID == performedBy {
		return domain.ErrSelfDemotion
	}

	performer, err := s.userRepo.FindByID(ctx, performedBy)
	if err != nil {
		return err
	}
	if performer.Role != domain.RoleSuperAdmin {
		return domain.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateRole(ctx, userID, domain.RoleBuyer); err != nil {
		return fmt.Errorf("demote user %d: %w", userID, err)
	}
	if err := s.sessions.InvalidateAll(ctx, userID); err != nil {
		return err
	}

	if err := s.notifier.SendDemotionNotice(ctx, user.Email, user.Name, user.Locale); err != nil {
		s.logger.Error("demotion notice not delivered",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()))
	}

	s.logger.Info("user demoted",
		slog.Uint64("user_id", uint64(userID)),
		slog.Uint64("performed_by", uint64(performedBy)))
	return nil
}

// Ban implements domain.AdminService. Session revocation here is a hard
// requirement, not an optimization.
func (s *AdminService) Ban(ctx context.Context, userID uint) error {
	return s.setStatusRevoked(ctx, userID, domain.StatusBanned)
}

// Deactivate implements domain.AdminService.
func (s *AdminService) Deactivate(ctx context.Context, userID uint) error {
	return s.setStatusRevoked(ctx, userID, domain.StatusInactive)
}

func (s *AdminService) setStatusRevoked(ctx context.Context, userID uint, status domain.UserStatus) error {
	if err := s.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		return err
	}
	if err := s.sessions.InvalidateAll(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user status changed",
		slog.Uint64("user_id", uint64(userID)),
		slog.String("status", string(status)))
	return nil
}

// Activate implements domain.AdminService.
func (s *AdminService) Activate(ctx context.Context, userID uint) error {
	return s.userRepo.UpdateStatus(ctx, userID, domain.StatusActive)
}

// EnsureSuperAdmin is the idempotent bootstrap: when no active SuperAdmin
// exists, the configured default is created. Intended to run once at
// startup.
func (s *AdminService) EnsureSuperAdmin(ctx context.Context) error {
	count, err := s.userRepo.CountActiveByRole(ctx, domain.RoleSuperAdmin)
	if err != nil {
		return fmt.Errorf("count super admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err = s.CreateAdmin(ctx,
		s.bootstrap.SuperAdminEmail,
		s.bootstrap.SuperAdminPhone,
		s.bootstrap.SuperAdminName,
		domain.RoleSuperAdmin,
		"en")
	if err != nil {
		return fmt.Errorf("bootstrap super admin: %w", err)
	}
	s.logger.Info("default super admin created",
		slog.String("email", s.bootstrap.SuperAdminEmail))
	return nil
}

var _ domain.AdminService = (*AdminService)(nil)
