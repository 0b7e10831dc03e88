package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdateRole(ctx context.Context, userID uint, role Role) error
	UpdateStatus(ctx context.Context, userID uint, status UserStatus) error
	MarkEmailVerified(ctx context.Context, userID uint, at time.Time) error
	MarkPhoneVerified(ctx context.Context, userID uint, at time.Time) error
	TouchLastLogin(ctx context.Context, userID uint, at time.Time) error
	CountActiveByRole(ctx context.Context, role Role) (int64, error)
}

// OTPRepository defines one-time code persistence. ReplaceActive must delete
// prior unverified codes for the pair and insert the new one atomically.
type OTPRepository interface {
	ReplaceActive(ctx context.Context, code *OTPCode) error
	FindActive(ctx context.Context, userID uint, purpose OTPPurpose, now time.Time) (*OTPCode, error)
	IncrementAttempts(ctx context.Context, id uint) error
	MarkVerified(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	DeleteByPurpose(ctx context.Context, userID uint, purpose OTPPurpose) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionRepository defines session persistence.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	UpdateTokens(ctx context.Context, sessionID, token, refreshToken string, expiresAt time.Time) error
	Delete(ctx context.Context, sessionID string) error
	DeleteByUser(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// StoreRepository resolves seller-owned stores for ownership checks.
type StoreRepository interface {
	FindByID(ctx context.Context, id uint) (*Store, error)
	FindBySeller(ctx context.Context, sellerID uint) (*Store, error)
}

// TokenService signs and verifies access/refresh tokens. Verification is a
// pure function over the shared secret; it never consults the session store.
type TokenService interface {
	IssueAccessToken(userID uint, role Role, sessionID string) (string, error)
	IssueRefreshToken(userID uint, sessionID string) (string, error)
	Verify(token string, audience TokenAudience) (*TokenClaims, error)
}

// OTPService owns one-time code generation, attempt counting and expiry.
type OTPService interface {
	Generate(ctx context.Context, userID uint, purpose OTPPurpose) (*OTPIssue, error)
	Verify(ctx context.Context, userID uint, code string, purpose OTPPurpose) error
	Consume(ctx context.Context, userID uint, purpose OTPPurpose) error
}

// SessionService is the source of truth binding live tokens to users.
// Validate returns (nil, nil) for any unauthenticated outcome so callers
// uniformly treat absence as "not logged in".
type SessionService interface {
	Create(ctx context.Context, user *User, userAgent, ip string) (*AuthResult, error)
	Validate(ctx context.Context, accessToken string) (*SessionData, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Invalidate(ctx context.Context, sessionID string) error
	InvalidateAll(ctx context.Context, userID uint) error
}

// AuthService drives the passwordless registration and login flows.
type AuthService interface {
	Register(ctx context.Context, email, phone, name string, role Role, locale string) (*User, error)
	RequestOTP(ctx context.Context, email string, purpose OTPPurpose) error
	VerifyEmail(ctx context.Context, email, code string) error
	RequestLogin(ctx context.Context, email string) error
	Login(ctx context.Context, email, code, userAgent, ip string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	Profile(ctx context.Context, userID uint) (*User, error)
}

// AdminService covers privileged role administration.
type AdminService interface {
	CreateAdmin(ctx context.Context, email, phone, name string, role Role, locale string) (*User, error)
	Promote(ctx context.Context, userID uint, role Role) error
	Demote(ctx context.Context, userID, performedBy uint) error
	Ban(ctx context.Context, userID uint) error
	Deactivate(ctx context.Context, userID uint) error
	Activate(ctx context.Context, userID uint) error
	EnsureSuperAdmin(ctx context.Context) error
}

// NotificationService is the external delivery collaborator. Implementations
// are fire-and-forget from the caller's point of view: auth operations log
// delivery failures and still succeed.
type NotificationService interface {
	SendOTPMessage(ctx context.Context, user *User, code string, purpose OTPPurpose) error
	SendAdminWelcome(ctx context.Context, email, name, locale string) error
	SendPromotionNotice(ctx context.Context, email, name, locale string, role Role) error
	SendDemotionNotice(ctx context.Context, email, name, locale string) error
}

// PolicyService is the single role→permission table consulted by the
// authorization guard. SuperAdmin implicitly holds every permission.
type PolicyService interface {
	HasPermission(role Role, permission string) (bool, error)
	GrantPermission(role Role, permission string) error
	RevokePermission(role Role, permission string) error
	Policies() [][]string
}

// RateLimitResult is the outcome of one counter check.
type RateLimitResult struct {
	Limited   bool
	Remaining int
	ResetAt   time.Time
}

// RateLimiter is a windowed counter keyed by identity and scope.
type RateLimiter interface {
	Check(ctx context.Context, key string, max int, window time.Duration) (*RateLimitResult, error)
}
