package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Role is the user's position in the marketplace hierarchy.
type Role string

const (
	RoleBuyer      Role = "buyer"
	RoleSeller     Role = "seller"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdministrative reports whether the role carries administrative override
// rights on ownership-scoped resources.
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// UserStatus is the account lifecycle state.
type UserStatus string

const (
	StatusPendingVerification UserStatus = "pending_verification"
	StatusActive              UserStatus = "active"
	StatusInactive            UserStatus = "inactive"
	StatusBanned              UserStatus = "banned"
)

// CanAuthenticate reports whether a user in this status may hold a live session.
func (s UserStatus) CanAuthenticate() bool {
	return s == StatusActive
}

// OTPPurpose scopes a one-time code to the action it proves.
type OTPPurpose string

const (
	PurposeEmailVerification OTPPurpose = "email_verification"
	PurposePhoneVerification OTPPurpose = "phone_verification"
	PurposeLogin             OTPPurpose = "login"
)

// Valid reports whether p is a known purpose.
func (p OTPPurpose) Valid() bool {
	switch p {
	case PurposeEmailVerification, PurposePhoneVerification, PurposeLogin:
		return true
	}
	return false
}

// Verification is a tagged Unverified | VerifiedAt(t) value. The zero value is
// Unverified. It replaces nullable timestamps used as implicit booleans.
type Verification struct {
	verified bool
	at       time.Time
}

// VerifiedAt builds a verified-at-t value.
func VerifiedAt(t time.Time) Verification {
	return Verification{verified: true, at: t}
}

// Unverified is the absent state.
func Unverified() Verification { return Verification{} }

// Verified reports whether the value carries a timestamp.
func (v Verification) Verified() bool { return v.verified }

// Time returns the verification timestamp; zero when unverified.
func (v Verification) Time() time.Time { return v.at }

// Value implements driver.Valuer so the variant persists as a nullable
// timestamp column.
func (v Verification) Value() (driver.Value, error) {
	if !v.verified {
		return nil, nil
	}
	return v.at, nil
}

// Scan implements sql.Scanner.
func (v *Verification) Scan(src any) error {
	if src == nil {
		*v = Verification{}
		return nil
	}
	switch t := src.(type) {
	case time.Time:
		*v = VerifiedAt(t)
		return nil
	case string:
		parsed, err := parseDBTime(t)
		if err != nil {
			return fmt.Errorf("scan verification: %w", err)
		}
		*v = VerifiedAt(parsed)
		return nil
	case []byte:
		parsed, err := parseDBTime(string(t))
		if err != nil {
			return fmt.Errorf("scan verification: %w", err)
		}
		*v = VerifiedAt(parsed)
		return nil
	default:
		return fmt.Errorf("scan verification: unsupported type %T", src)
	}
}

func parseDBTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// User is the identity record. Email is unique case-insensitive; phone is
// optional and stored in E.164 form.
type User struct {
	ID            uint
	Email         string
	Phone         string
	Name          string
	Role          Role
	Status        UserStatus
	Locale        string
	EmailVerified Verification
	PhoneVerified Verification
	LastLoginAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OTPCode is an ephemeral credential bound to a (user, purpose) pair. At most
// one unverified, unexpired code exists per pair.
type OTPCode struct {
	ID        uint
	UserID    uint
	Code      string
	Purpose   OTPPurpose
	ExpiresAt time.Time
	Attempts  int
	Verified  bool
	CreatedAt time.Time
}

// Expired reports whether the code is past its expiry at the given instant.
func (c *OTPCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Session binds a live token pair to a user. Token holds the current access
// token and RefreshToken the current refresh token; both change on rotation so
// superseded tokens fail the store lookup.
type Session struct {
	ID           string
	UserID       uint
	Token        string
	RefreshToken string
	UserAgent    string
	IPAddress    string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionData is the authenticated context the session service hands to the
// authorization guard after a successful validate.
type SessionData struct {
	SessionID string
	User      *User
}

// Store is the seller-owned resource backing ownership checks on
// seller-scoped routes.
type Store struct {
	ID        uint
	SellerID  uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthResult is the outcome of a completed login or refresh.
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// OTPIssue is the outcome of generating a one-time code.
type OTPIssue struct {
	Code      string
	ExpiresAt time.Time
}

// TokenAudience distinguishes access tokens from refresh tokens so one can
// never be replayed as the other.
type TokenAudience string

const (
	AudienceAccess  TokenAudience = "cargoparts/access"
	AudienceRefresh TokenAudience = "cargoparts/refresh"
)

// TokenClaims are the verified contents of a signed token.
type TokenClaims struct {
	UserID    uint
	Role      Role
	SessionID string
	Audience  TokenAudience
	IssuedAt  time.Time
	ExpiresAt time.Time
}
