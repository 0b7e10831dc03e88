package mocks

import (
	"context"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// MockNotificationService implements domain.NotificationService for testing.
type MockNotificationService struct {
	SendOTPMessageFunc      func(ctx context.Context, user *domain.User, code string, purpose domain.OTPPurpose) error
	SendAdminWelcomeFunc    func(ctx context.Context, email, name, locale string) error
	SendPromotionNoticeFunc func(ctx context.Context, email, name, locale string, role domain.Role) error
	SendDemotionNoticeFunc  func(ctx context.Context, email, name, locale string) error
}

// NewMockNotificationService creates a mock with default behaviors.
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendOTPMessage(ctx context.Context, user *domain.User, code string, purpose domain.OTPPurpose) error {
	if m.SendOTPMessageFunc != nil {
		return m.SendOTPMessageFunc(ctx, user, code, purpose)
	}
	return nil
}

func (m *MockNotificationService) SendAdminWelcome(ctx context.Context, email, name, locale string) error {
	if m.SendAdminWelcomeFunc != nil {
		return m.SendAdminWelcomeFunc(ctx, email, name, locale)
	}
	return nil
}

func (m *MockNotificationService) SendPromotionNotice(ctx context.Context, email, name, locale string, role domain.Role) error {
	if m.SendPromotionNoticeFunc != nil {
		return m.SendPromotionNoticeFunc(ctx, email, name, locale, role)
	}
	return nil
}

func (m *MockNotificationService) SendDemotionNotice(ctx context.Context, email, name, locale string) error {
	if m.SendDemotionNoticeFunc != nil {
		return m.SendDemotionNoticeFunc(ctx, email, name, locale)
	}
	return nil
}

var _ domain.NotificationService = (*MockNotificationService)(nil)
