package mocks

import (
	"context"
	"time"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// MockUserRepository implements domain.UserRepository for testing.
type MockUserRepository struct {
	CreateFunc            func(ctx context.Context, user *domain.User) error
	FindByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	FindByPhoneFunc       func(ctx context.Context, phone string) (*domain.User, error)
	FindByIDFunc          func(ctx context.Context, id uint) (*domain.User, error)
	UpdateFunc            func(ctx context.Context, user *domain.User) error
	UpdateRoleFunc        func(ctx context.Context, userID uint, role domain.Role) error
	UpdateStatusFunc      func(ctx context.Context, userID uint, status domain.UserStatus) error
	MarkEmailVerifiedFunc func(ctx context.Context, userID uint, at time.Time) error
	MarkPhoneVerifiedFunc func(ctx context.Context, userID uint, at time.Time) error
	TouchLastLoginFunc    func(ctx context.Context, userID uint, at time.Time) error
	CountActiveByRoleFunc func(ctx context.Context, role domain.Role) (int64, error)
}

// NewMockUserRepository creates a mock with default behaviors.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID uint, role domain.Role) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, userID, role)
	}
	return nil
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, userID uint, status domain.UserStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, userID, status)
	}
	return nil
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, userID uint, at time.Time) error {
	if m.MarkEmailVerifiedFunc != nil {
		return m.MarkEmailVerifiedFunc(ctx, userID, at)
	}
	return nil
}

func (m *MockUserRepository) MarkPhoneVerified(ctx context.Context, userID uint, at time.Time) error {
	if m.MarkPhoneVerifiedFunc != nil {
		return m.MarkPhoneVerifiedFunc(ctx, userID, at)
	}
	return nil
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, userID uint, at time.Time) error {
	if m.TouchLastLoginFunc != nil {
		return m.TouchLastLoginFunc(ctx, userID, at)
	}
	return nil
}

func (m *MockUserRepository) CountActiveByRole(ctx context.Context, role domain.Role) (int64, error) {
	if m.CountActiveByRoleFunc != nil {
		return m.CountActiveByRoleFunc(ctx, role)
	}
	return 0, nil
}

var _ domain.UserRepository = (*MockUserRepository)(nil)
