package mocks

import (
	"context"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// MockSessionService implements domain.SessionService for testing.
type MockSessionService struct {
	CreateFunc        func(ctx context.Context, user *domain.User, userAgent, ip string) (*domain.AuthResult, error)
	ValidateFunc      func(ctx context.Context, accessToken string) (*domain.SessionData, error)
	RefreshFunc       func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	InvalidateFunc    func(ctx context.Context, sessionID string) error
	InvalidateAllFunc func(ctx context.Context, userID uint) error
}

// NewMockSessionService creates a mock with default behaviors.
func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

func (m *MockSessionService) Create(ctx context.Context, user *domain.User, userAgent, ip string) (*domain.AuthResult, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user, userAgent, ip)
	}
	return &domain.AuthResult{
		User:         user,
		AccessToken:  "mock_access_token",
		RefreshToken: "mock_refresh_token",
		SessionID:    "mock_session",
	}, nil
}

func (m *MockSessionService) Validate(ctx context.Context, accessToken string) (*domain.SessionData, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, accessToken)
	}
	return nil, nil
}

func (m *MockSessionService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, domain.ErrInvalidToken
}

func (m *MockSessionService) Invalidate(ctx context.Context, sessionID string) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockSessionService) InvalidateAll(ctx context.Context, userID uint) error {
	if m.InvalidateAllFunc != nil {
		return m.InvalidateAllFunc(ctx, userID)
	}
	return nil
}

var _ domain.SessionService = (*MockSessionService)(nil)
