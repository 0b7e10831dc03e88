package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// Permission tokens. Enforcement points consult the policy service instead
// of keeping their own role lists, so the table below is the only place the
// role→permission mapping lives.
const (
	PermAdminsCreate  = "admins:create"
	PermUsersPromote  = "users:promote"
	PermUsersBan      = "users:ban"
	PermPoliciesRead  = "policies:read"
	PermPoliciesWrite = "policies:write"
	PermStoresRead    = "stores:read"
	PermStoresWrite   = "stores:write"
)

// defaultPolicies is the static role→permission-set table seeded on startup.
// SuperAdmin is granted the wildcard and therefore implicitly holds every
// permission.
var defaultPolicies = map[domain.Role][]string{
	domain.RoleSuperAdmin: {"*"},
	domain.RoleAdmin:      {PermUsersPromote, PermUsersBan, PermPoliciesRead, PermStoresRead, PermStoresWrite},
	domain.RoleSeller:     {PermStoresRead, PermStoresWrite},
	domain.RoleBuyer:      {PermStoresRead},
}

// PolicyService implements domain.PolicyService on a casbin enforcer with
// database-persisted policies.
type PolicyService struct {
	enforcer *casbin.Enforcer
}

// NewPolicyService creates a new policy service.
func NewPolicyService(enforcer *casbin.Enforcer) *PolicyService {
	return &PolicyService{enforcer: enforcer}
}

// casbinSubject prefixes roles the way policies are stored.
func casbinSubject(role domain.Role) string {
	return "role_" + string(role)
}

// HasPermission implements domain.PolicyService.
func (p *PolicyService) HasPermission(role domain.Role, permission string) (bool, error) {
	return p.enforcer.Enforce(casbinSubject(role), permission)
}

// GrantPermission implements domain.PolicyService.
func (p *PolicyService) GrantPermission(role domain.Role, permission string) error {
	if _, err := p.enforcer.AddPolicy(casbinSubject(role), permission); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// RevokePermission implements domain.PolicyService.
func (p *PolicyService) RevokePermission(role domain.Role, permission string) error {
	if _, err := p.enforcer.RemovePolicy(casbinSubject(role), permission); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// Policies implements domain.PolicyService.
func (p *PolicyService) Policies() [][]string {
	policies, _ := p.enforcer.GetPolicy()
	return policies
}

// SeedDefaultPolicies installs the static table when the policy store is
// empty. Idempotent: an already-seeded store is left untouched.
func (p *PolicyService) SeedDefaultPolicies() error {
	existing, err := p.enforcer.GetPolicy()
	if err != nil {
		return fmt.Errorf("load policies: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for role, perms := range defaultPolicies {
		for _, perm := range perms {
			if _, err := p.enforcer.AddPolicy(casbinSubject(role), perm); err != nil {
				return fmt.Errorf("seed policy %s %s: %w", role, perm, err)
			}
		}
	}
	return p.enforcer.SavePolicy()
}

var _ domain.PolicyService = (*PolicyService)(nil)
