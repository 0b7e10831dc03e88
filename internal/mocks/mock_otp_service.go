package mocks

import (
	"context"
	"time"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// MockOTPService implements domain.OTPService for testing.
type MockOTPService struct {
	GenerateFunc func(ctx context.Context, userID uint, purpose domain.OTPPurpose) (*domain.OTPIssue, error)
	VerifyFunc   func(ctx context.Context, userID uint, code string, purpose domain.OTPPurpose) error
	ConsumeFunc  func(ctx context.Context, userID uint, purpose domain.OTPPurpose) error
}

// NewMockOTPService creates a mock with default behaviors.
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Generate(ctx context.Context, userID uint, purpose domain.OTPPurpose) (*domain.OTPIssue, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, userID, purpose)
	}
	return &domain.OTPIssue{Code: "123456", ExpiresAt: time.Now().Add(10 * time.Minute)}, nil
}

func (m *MockOTPService) Verify(ctx context.Context, userID uint, code string, purpose domain.OTPPurpose) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, userID, code, purpose)
	}
	return nil
}

func (m *MockOTPService) Consume(ctx context.Context, userID uint, purpose domain.OTPPurpose) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, userID, purpose)
	}
	return nil
}

var _ domain.OTPService = (*MockOTPService)(nil)
