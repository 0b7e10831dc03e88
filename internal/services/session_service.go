package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// sessionTokenPlaceholder occupies the token columns between row insert and
// the update that stores the real signed values.
const sessionTokenPlaceholder = "pending"

// SessionConfig carries the session service tunables.
type SessionConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// SessionService implements domain.SessionService. The session row is the
// source of truth binding a live token pair to a user: a token is only valid
// while its signed value matches the stored column.
type SessionService struct {
	sessionRepo domain.SessionRepository
	userRepo    domain.UserRepository
	tokens      domain.TokenService
	config      SessionConfig
	logger      *slog.Logger
	now         func() time.Time
}

// NewSessionService creates a new session service.
func NewSessionService(
	sessionRepo domain.SessionRepository,
	userRepo domain.UserRepository,
	tokens domain.TokenService,
	config SessionConfig,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		tokens:      tokens,
		config:      config,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

// Create implements domain.SessionService. The row is inserted with a
// placeholder token, the pair is minted embedding the new session id, then
// the row is updated with the real values so revocation lookups never have
// to re-derive signatures.
func (s *SessionService) Create(ctx context.Context, user *domain.User, userAgent, ip string) (*domain.AuthResult, error) {
	now := s.now()
	session := &domain.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Token:        sessionTokenPlaceholder,
		RefreshToken: sessionTokenPlaceholder,
		UserAgent:    userAgent,
		IPAddress:    ip,
		ExpiresAt:    now.Add(s.config.RefreshTTL),
		CreatedAt:    now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID, session.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := s.sessionRepo.UpdateTokens(ctx, session.ID, accessToken, refreshToken, session.ExpiresAt); err != nil {
		return nil, fmt.Errorf("store session tokens: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.config.AccessTTL.Seconds()),
	}, nil
}

// Validate implements domain.SessionService. Every unauthenticated outcome
// (bad signature, revoked or expired session, superseded token, banned or
// inactive user) returns (nil, nil); only store failures surface as errors.
func (s *SessionService) Validate(ctx context.Context, accessToken string) (*domain.SessionData, error) {
	claims, err := s.tokens.Verify(accessToken, domain.AudienceAccess)
	if err != nil {
		return nil, nil
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	if session.Token != accessToken || s.now().After(session.ExpiresAt) {
		return nil, nil
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session user: %w", err)
	}

	if !user.Status.CanAuthenticate() {
		return nil, nil
	}

	return &domain.SessionData{SessionID: session.ID, User: user}, nil
}

// Refresh implements domain.SessionService. Rotation mints a fresh pair and
// overwrites the stored columns, so the presented refresh token succeeds
// exactly once; a replay no longer matches the row and fails.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokens.Verify(refreshToken, domain.AudienceRefresh)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	if session.RefreshToken != refreshToken || s.now().After(session.ExpiresAt) {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("load session user: %w", err)
	}
	if !user.Status.CanAuthenticate() {
		return nil, domain.ErrAccountNotActive
	}

	newAccess, err := s.tokens.IssueAccessToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	newRefresh, err := s.tokens.IssueRefreshToken(user.ID, session.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	expiresAt := s.now().Add(s.config.RefreshTTL)
	if err := s.sessionRepo.UpdateTokens(ctx, session.ID, newAccess, newRefresh, expiresAt); err != nil {
		return nil, fmt.Errorf("rotate session tokens: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  newAccess,
		RefreshToken: newRefresh,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.config.AccessTTL.Seconds()),
	}, nil
}

// Invalidate implements domain.SessionService.
func (s *SessionService) Invalidate(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// InvalidateAll is the revocation primitive invoked whenever an
// administrator bans or deactivates a user.
func (s *SessionService) InvalidateAll(ctx context.Context, userID uint) error {
	if err := s.sessionRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("invalidate sessions for user %d: %w", userID, err)
	}
	s.logger.Info("all sessions invalidated", slog.Uint64("user_id", uint64(userID)))
	return nil
}

var _ domain.SessionService = (*SessionService)(nil)
