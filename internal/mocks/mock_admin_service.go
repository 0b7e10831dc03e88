package mocks

import (
	"context"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// MockAdminService implements domain.AdminService for testing.
type MockAdminService struct {
	CreateAdminFunc      func(ctx context.Context, email, phone, name string, role domain.Role, locale string) (*domain.User, error)
	PromoteFunc          func(ctx context.Context, userID uint, role domain.Role) error
	DemoteFunc           func(ctx context.Context, userID, performedBy uint) error
	BanFunc              func(ctx context.Context, userID uint) error
	DeactivateFunc       func(ctx context.Context, userID uint) error
	ActivateFunc         func(ctx context.Context, userID uint) error
	EnsureSuperAdminFunc func(ctx context.Context) error
}

// NewMockAdminService creates a mock with default behaviors.
func NewMockAdminService() *MockAdminService {
	return &MockAdminService{}
}

func (m *MockAdminService) CreateAdmin(ctx context.Context, email, phone, name string, role domain.Role, locale string) (*domain.User, error) {
	if m.CreateAdminFunc != nil {
		return m.CreateAdminFunc(ctx, email, phone, name, role, locale)
	}
	return &domain.User{ID: 1, Email: email, Phone: phone, Name: name, Role: role, Status: domain.StatusActive}, nil
}

func (m *MockAdminService) Promote(ctx context.Context, userID uint, role domain.Role) error {
	if m.PromoteFunc != nil {
		return m.PromoteFunc(ctx, userID, role)
	}
	return nil
}

func (m *MockAdminService) Demote(ctx context.Context, userID, performedBy uint) error {
	if m.DemoteFunc != nil {
		return m.DemoteFunc(ctx, userID, performedBy)
	}
	return nil
}

func (m *MockAdminService) Ban(ctx context.Context, userID uint) error {
	if m.BanFunc != nil {
		return m.BanFunc(ctx, userID)
	}
	return nil
}

func (m *MockAdminService) Deactivate(ctx context.Context, userID uint) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, userID)
	}
	return nil
}

func (m *MockAdminService) Activate(ctx context.Context, userID uint) error {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, userID)
	}
	return nil
}

func (m *MockAdminService) EnsureSuperAdmin(ctx context.Context) error {
	if m.EnsureSuperAdminFunc != nil {
		return m.EnsureSuperAdminFunc(ctx)
	}
	return nil
}

var _ domain.AdminService = (*MockAdminService)(nil)
