package middleware

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
	"github.com/OmarEhab007/cargoparts-sub000/internal/http/respond"
)

// sessionKey is the gin context key holding the authenticated SessionData.
const sessionKey = "auth_session"

// Guard composes the ordered authorization checks in front of protected
// handlers: credential extraction, session validation, account status, role
// membership, permission lookup, per-user throttling and resource ownership.
type Guard struct {
	sessions   domain.SessionService
	tokens     domain.TokenService
	users      domain.UserRepository
	policies   domain.PolicyService
	limiter    domain.RateLimiter
	stores     domain.StoreRepository
	cookieName string
	logger     *slog.Logger
}

// NewGuard creates the authorization guard.
func NewGuard(
	sessions domain.SessionService,
	tokens domain.TokenService,
	users domain.UserRepository,
	policies domain.PolicyService,
	limiter domain.RateLimiter,
	stores domain.StoreRepository,
	cookieName string,
	logger *slog.Logger,
) *Guard {
	return &Guard{
		sessions:   sessions,
		tokens:     tokens,
		users:      users,
		policies:   policies,
		limiter:    limiter,
		stores:     stores,
		cookieName: cookieName,
		logger:     logger,
	}
}

// CurrentSession returns the SessionData placed in the context by
// Authenticate.
func CurrentSession(c *gin.Context) (*domain.SessionData, bool) {
	value, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := value.(*domain.SessionData)
	return sess, ok
}

// Authenticate validates the presented credential against the session store
// and stores the resulting SessionData in the request context. A valid
// signature whose user is banned or inactive yields Forbidden rather than
// Unauthenticated, so callers can distinguish a revoked account from a stale
// token.
func (g *Guard) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, ok := ExtractCredential(c, g.cookieName)
		if !ok {
			respond.AbortError(c, g.logger, domain.ErrUnauthenticated)
			return
		}

		sess, err := g.sessions.Validate(c.Request.Context(), string(cred))
		if err != nil {
			respond.AbortError(c, g.logger, err)
			return
		}
		if sess == nil {
			respond.AbortError(c, g.logger, g.classifyRejection(c, cred))
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// classifyRejection distinguishes a structurally valid token whose account
// was banned or deactivated (Forbidden) from every other invalid credential
// (Unauthenticated).
func (g *Guard) classifyRejection(c *gin.Context, cred Credential) error {
	claims, err := g.tokens.Verify(string(cred), domain.AudienceAccess)
	if err != nil {
		return domain.ErrUnauthenticated
	}
	user, err := g.users.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return domain.ErrUnauthenticated
	}
	if !user.Status.CanAuthenticate() {
		return domain.ErrAccountNotActive
	}
	return domain.ErrUnauthenticated
}

// RequireRoles rejects sessions whose role is not in the allow list.
func (g *Guard) RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			respond.AbortError(c, g.logger, domain.ErrUnauthenticated)
			return
		}
		if _, ok := allowed[sess.User.Role]; !ok {
			respond.AbortError(c, g.logger, domain.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequirePermission resolves a fine-grained permission through the central
// role→permission table.
func (g *Guard) RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			respond.AbortError(c, g.logger, domain.ErrUnauthenticated)
			return
		}
		allowed, err := g.policies.HasPermission(sess.User.Role, permission)
		if err != nil {
			respond.AbortError(c, g.logger, fmt.Errorf("permission check: %w", err))
			return
		}
		if !allowed {
			respond.AbortError(c, g.logger, domain.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RateLimit throttles by user when authenticated, by client IP otherwise.
func (g *Guard) RateLimit(max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if sess, ok := CurrentSession(c); ok {
			key = fmt.Sprintf("user:%d", sess.User.ID)
		}
		key = fmt.Sprintf("api:%s:%s", key, c.FullPath())

		result, err := g.limiter.Check(c.Request.Context(), key, max, window)
		if err != nil {
			respond.AbortError(c, g.logger, fmt.Errorf("rate limit check: %w", err))
			return
		}
		if result.Limited {
			retryAfter := int64(time.Until(result.ResetAt).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}
			respond.AbortError(c, g.logger, domain.RateLimitedError(domain.ErrRateLimited, retryAfter))
			return
		}
		c.Next()
	}
}

// RequireStoreOwnership rejects sellers acting on a store that is not their
// own. Admin and SuperAdmin override the check.
func (g *Guard) RequireStoreOwnership(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			respond.AbortError(c, g.logger, domain.ErrUnauthenticated)
			return
		}
		if sess.User.Role.IsAdministrative() {
			c.Next()
			return
		}

		id, err := strconv.ParseUint(c.Param(param), 10, 32)
		if err != nil {
			respond.AbortError(c, g.logger, domain.ErrStoreNotFound)
			return
		}

		store, err := g.stores.FindBySeller(c.Request.Context(), sess.User.ID)
		if err != nil {
			respond.AbortError(c, g.logger, domain.ErrNotResourceOwner)
			return
		}
		if store.ID != uint(id) {
			respond.AbortError(c, g.logger, domain.ErrNotResourceOwner)
			return
		}
		c.Next()
	}
}
