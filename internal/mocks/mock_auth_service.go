package mocks

import (
	"context"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// MockAuthService implements domain.AuthService for testing.
type MockAuthService struct {
	RegisterFunc     func(ctx context.Context, email, phone, name string, role domain.Role, locale string) (*domain.User, error)
	RequestOTPFunc   func(ctx context.Context, email string, purpose domain.OTPPurpose) error
	VerifyEmailFunc  func(ctx context.Context, email, code string) error
	RequestLoginFunc func(ctx context.Context, email string) error
	LoginFunc        func(ctx context.Context, email, code, userAgent, ip string) (*domain.AuthResult, error)
	RefreshFunc      func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc       func(ctx context.Context, sessionID string) error
	ProfileFunc      func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a mock with default behaviors.
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, email, phone, name string, role domain.Role, locale string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, phone, name, role, locale)
	}
	return &domain.User{ID: 1, Email: email, Phone: phone, Name: name, Role: role, Status: domain.StatusPendingVerification}, nil
}

func (m *MockAuthService) RequestOTP(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	if m.RequestOTPFunc != nil {
		return m.RequestOTPFunc(ctx, email, purpose)
	}
	return nil
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, email, code string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, email, code)
	}
	return nil
}

func (m *MockAuthService) RequestLogin(ctx context.Context, email string) error {
	if m.RequestLoginFunc != nil {
		return m.RequestLoginFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) Login(ctx context.Context, email, code, userAgent, ip string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, code, userAgent, ip)
	}
	return nil, domain.ErrOTPInvalidOrExpired
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, domain.ErrInvalidToken
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockAuthService) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

var _ domain.AuthService = (*MockAuthService)(nil)
