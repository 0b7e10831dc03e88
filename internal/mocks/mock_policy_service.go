package mocks

import (
	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// MockPolicyService implements domain.PolicyService for testing.
type MockPolicyService struct {
	HasPermissionFunc    func(role domain.Role, permission string) (bool, error)
	GrantPermissionFunc  func(role domain.Role, permission string) error
	RevokePermissionFunc func(role domain.Role, permission string) error
	PoliciesFunc         func() [][]string
}

// NewMockPolicyService creates a mock with default behaviors.
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

func (m *MockPolicyService) HasPermission(role domain.Role, permission string) (bool, error) {
	if m.HasPermissionFunc != nil {
		return m.HasPermissionFunc(role, permission)
	}
	// Default: SuperAdmin holds everything, everyone else nothing.
	return role == domain.RoleSuperAdmin, nil
}

func (m *MockPolicyService) GrantPermission(role domain.Role, permission string) error {
	if m.GrantPermissionFunc != nil {
		return m.GrantPermissionFunc(role, permission)
	}
	return nil
}

func (m *MockPolicyService) RevokePermission(role domain.Role, permission string) error {
	if m.RevokePermissionFunc != nil {
		return m.RevokePermissionFunc(role, permission)
	}
	return nil
}

func (m *MockPolicyService) Policies() [][]string {
	if m.PoliciesFunc != nil {
		return m.PoliciesFunc()
	}
	return nil
}

var _ domain.PolicyService = (*MockPolicyService)(nil)
