package mocks

import (
	"context"
	"time"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// MockOTPRepository implements domain.OTPRepository for testing.
type MockOTPRepository struct {
	ReplaceActiveFunc     func(ctx context.Context, code *domain.OTPCode) error
	FindActiveFunc        func(ctx context.Context, userID uint, purpose domain.OTPPurpose, now time.Time) (*domain.OTPCode, error)
	IncrementAttemptsFunc func(ctx context.Context, id uint) error
	MarkVerifiedFunc      func(ctx context.Context, id uint) error
	DeleteFunc            func(ctx context.Context, id uint) error
	DeleteByPurposeFunc   func(ctx context.Context, userID uint, purpose domain.OTPPurpose) error
	DeleteExpiredFunc     func(ctx context.Context, now time.Time) (int64, error)
}

// NewMockOTPRepository creates a mock with default behaviors.
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

func (m *MockOTPRepository) ReplaceActive(ctx context.Context, code *domain.OTPCode) error {
	if m.ReplaceActiveFunc != nil {
		return m.ReplaceActiveFunc(ctx, code)
	}
	return nil
}

func (m *MockOTPRepository) FindActive(ctx context.Context, userID uint, purpose domain.OTPPurpose, now time.Time) (*domain.OTPCode, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx, userID, purpose, now)
	}
	return nil, domain.ErrOTPInvalidOrExpired
}

func (m *MockOTPRepository) IncrementAttempts(ctx context.Context, id uint) error {
	if m.IncrementAttemptsFunc != nil {
		return m.IncrementAttemptsFunc(ctx, id)
	}
	return nil
}

func (m *MockOTPRepository) MarkVerified(ctx context.Context, id uint) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, id)
	}
	return nil
}

func (m *MockOTPRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockOTPRepository) DeleteByPurpose(ctx context.Context, userID uint, purpose domain.OTPPurpose) error {
	if m.DeleteByPurposeFunc != nil {
		return m.DeleteByPurposeFunc(ctx, userID, purpose)
	}
	return nil
}

func (m *MockOTPRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, now)
	}
	return 0, nil
}

var _ domain.OTPRepository = (*MockOTPRepository)(nil)
