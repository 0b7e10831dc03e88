package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

func newTestUser(email, phone string) *domain.User {
	return &domain.User{
		Email:  email,
		Phone:  phone,
		Name:   "Test User",
		Role:   domain.RoleBuyer,
		Status: domain.StatusPendingVerification,
		Locale: "ar",
	}
}

func TestUserRepositoryCreateAndFind(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := newTestUser("Buyer@Example.com", "+966501234567")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("Create() did not backfill the id")
	}

	// Case-insensitive email lookup.
	found, err := repo.FindByEmail(ctx, "bUyEr@exAmple.COM")
	if err != nil {
		t.Fatalf("FindByEmail() error: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("FindByEmail() id = %d, want %d", found.ID, user.ID)
	}
	if found.Email != "buyer@example.com" {
		t.Errorf("stored email = %q, want lowercased", found.Email)
	}

	byPhone, err := repo.FindByPhone(ctx, "+966501234567")
	if err != nil {
		t.Fatalf("FindByPhone() error: %v", err)
	}
	if byPhone.ID != user.ID {
		t.Errorf("FindByPhone() id = %d, want %d", byPhone.ID, user.ID)
	}
}

func TestUserRepositoryNotFound(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	if _, err := repo.FindByEmail(ctx, "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("FindByEmail() err = %v, want ErrUserNotFound", err)
	}
	if _, err := repo.FindByID(ctx, 999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("FindByID() err = %v, want ErrUserNotFound", err)
	}
	if err := repo.UpdateStatus(ctx, 999, domain.StatusBanned); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("UpdateStatus() on missing user err = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, newTestUser("dup@example.com", "")); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := repo.Create(ctx, newTestUser("DUP@example.com", "")); err == nil {
		t.Error("duplicate email accepted")
	}
}

func TestUserRepositoryRoleAndStatus(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := newTestUser("seller@example.com", "")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if err := repo.UpdateRole(ctx, user.ID, domain.RoleAdmin); err != nil {
		t.Fatalf("UpdateRole() error: %v", err)
	}
	if err := repo.UpdateStatus(ctx, user.ID, domain.StatusActive); err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}

	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if found.Role != domain.RoleAdmin {
		t.Errorf("role = %s, want admin", found.Role)
	}
	if found.Status != domain.StatusActive {
		t.Errorf("status = %s, want active", found.Status)
	}
}

func TestUserRepositoryMarkEmailVerified(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := newTestUser("verify@example.com", "")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	found, _ := repo.FindByID(ctx, user.ID)
	if found.EmailVerified.Verified() {
		t.Fatal("new user must start unverified")
	}

	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	if err := repo.MarkEmailVerified(ctx, user.ID, at); err != nil {
		t.Fatalf("MarkEmailVerified() error: %v", err)
	}

	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if !found.EmailVerified.Verified() {
		t.Error("verification flag lost after round trip")
	}
	if !found.EmailVerified.Time().Equal(at) {
		t.Errorf("verified at = %v, want %v", found.EmailVerified.Time(), at)
	}
}

func TestUserRepositoryCountActiveByRole(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	root := newTestUser("root@example.com", "")
	root.Role = domain.RoleSuperAdmin
	root.Status = domain.StatusActive
	if err := repo.Create(ctx, root); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// An inactive super admin does not count.
	retired := newTestUser("retired@example.com", "")
	retired.Role = domain.RoleSuperAdmin
	retired.Status = domain.StatusInactive
	if err := repo.Create(ctx, retired); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	count, err := repo.CountActiveByRole(ctx, domain.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("CountActiveByRole() error: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestUserRepositoryTouchLastLogin(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := newTestUser("login@example.com", "")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	if err := repo.TouchLastLogin(ctx, user.ID, at); err != nil {
		t.Fatalf("TouchLastLogin() error: %v", err)
	}

	found, _ := repo.FindByID(ctx, user.ID)
	if found.LastLoginAt == nil || !found.LastLoginAt.Equal(at) {
		t.Errorf("last login = %v, want %v", found.LastLoginAt, at)
	}
}
