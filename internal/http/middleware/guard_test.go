package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
	"github.com/OmarEhab007/cargoparts-sub000/internal/mocks"
)

const testCookieName = "cp_access"

type guardFixture struct {
	sessions *mocks.MockSessionService
	tokens   *mocks.MockTokenService
	users    *mocks.MockUserRepository
	policies *mocks.MockPolicyService
	limiter  *mocks.MockRateLimiter
	stores   *mocks.MockStoreRepository
	guard    *Guard
}

func newGuardFixture() *guardFixture {
	gin.SetMode(gin.TestMode)
	f := &guardFixture{
		sessions: mocks.NewMockSessionService(),
		tokens:   mocks.NewMockTokenService(),
		users:    mocks.NewMockUserRepository(),
		policies: mocks.NewMockPolicyService(),
		limiter:  mocks.NewMockRateLimiter(),
		stores:   mocks.NewMockStoreRepository(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.guard = NewGuard(f.sessions, f.tokens, f.users, f.policies, f.limiter, f.stores, testCookieName, logger)
	return f
}

func (f *guardFixture) allowSession(user *domain.User) {
	f.sessions.ValidateFunc = func(ctx context.Context, accessToken string) (*domain.SessionData, error) {
		return &domain.SessionData{SessionID: "sess-1", User: user}, nil
	}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad error body %q: %v", w.Body.String(), err)
	}
	return body.Error.Code
}

func performRequest(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func TestExtractCredential(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		cookie string
		header string
		want   Credential
		wantOK bool
	}{
		{"cookie wins", "cookie-token", "Bearer header-token", "cookie-token", true},
		{"bearer header", "", "Bearer header-token", "header-token", true},
		{"case-insensitive scheme", "", "bearer header-token", "header-token", true},
		{"missing", "", "", "", false},
		{"wrong scheme", "", "Basic abc", "", false},
		{"empty bearer", "", "Bearer ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: testCookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			got, ok := ExtractCredential(c, testCookieName)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("got (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid session passes", func(t *testing.T) {
		f := newGuardFixture()
		f.allowSession(&domain.User{ID: 1, Role: domain.RoleBuyer, Status: domain.StatusActive})

		r := gin.New()
		r.GET("/me", f.guard.Authenticate(), func(c *gin.Context) {
			sess, ok := CurrentSession(c)
			if !ok {
				t.Error("session missing from context")
			}
			c.JSON(http.StatusOK, gin.H{"user_id": sess.User.ID})
		})

		w := performRequest(r, http.MethodGet, "/me", bearer("good-token"))
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("missing credential is 401", func(t *testing.T) {
		f := newGuardFixture()
		r := gin.New()
		r.GET("/me", f.guard.Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := performRequest(r, http.MethodGet, "/me", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("stale token is 401", func(t *testing.T) {
		f := newGuardFixture()
		// Validate -> (nil, nil); token does not even verify.
		r := gin.New()
		r.GET("/me", f.guard.Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := performRequest(r, http.MethodGet, "/me", bearer("stale"))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
		if code := errorCode(t, w); code != "UNAUTHENTICATED" {
			t.Errorf("code = %s, want UNAUTHENTICATED", code)
		}
	})

	t.Run("banned user with a structurally valid token is 403", func(t *testing.T) {
		f := newGuardFixture()
		// The session layer rejects (sessions were revoked on ban) but the
		// signature still verifies and the user exists banned.
		f.tokens.VerifyFunc = func(token string, audience domain.TokenAudience) (*domain.TokenClaims, error) {
			return &domain.TokenClaims{UserID: 7, SessionID: "sess-1", Audience: audience}, nil
		}
		f.users.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			return &domain.User{ID: id, Status: domain.StatusBanned}, nil
		}

		r := gin.New()
		r.GET("/me", f.guard.Authenticate(), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := performRequest(r, http.MethodGet, "/me", bearer("revoked-but-signed"))
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
		if code := errorCode(t, w); code != "ACCOUNT_NOT_ACTIVE" {
			t.Errorf("code = %s, want ACCOUNT_NOT_ACTIVE", code)
		}
	})
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		allowed  []domain.Role
		wantCode int
	}{
		{"admin allowed", domain.RoleAdmin, []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin}, http.StatusOK},
		{"buyer rejected", domain.RoleBuyer, []domain.Role{domain.RoleAdmin}, http.StatusForbidden},
		{"super admin must be listed explicitly", domain.RoleSuperAdmin, []domain.Role{domain.RoleAdmin}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGuardFixture()
			f.allowSession(&domain.User{ID: 1, Role: tt.role, Status: domain.StatusActive})

			r := gin.New()
			r.GET("/x", f.guard.Authenticate(), f.guard.RequireRoles(tt.allowed...), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := performRequest(r, http.MethodGet, "/x", bearer("tok"))
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	f := newGuardFixture()
	f.allowSession(&domain.User{ID: 1, Role: domain.RoleAdmin, Status: domain.StatusActive})
	f.policies.HasPermissionFunc = func(role domain.Role, permission string) (bool, error) {
		return permission == "users:ban", nil
	}

	r := gin.New()
	r.Use(f.guard.Authenticate())
	r.POST("/ban", f.guard.RequirePermission("users:ban"), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/admins", f.guard.RequirePermission("admins:create"), func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := performRequest(r, http.MethodPost, "/ban", bearer("tok")); w.Code != http.StatusOK {
		t.Errorf("granted permission rejected: %d", w.Code)
	}
	if w := performRequest(r, http.MethodPost, "/admins", bearer("tok")); w.Code != http.StatusForbidden {
		t.Errorf("missing permission allowed: %d", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	f := newGuardFixture()
	var seenKey string
	f.limiter.CheckFunc = func(ctx context.Context, key string, max int, window time.Duration) (*domain.RateLimitResult, error) {
		seenKey = key
		return &domain.RateLimitResult{Limited: true, ResetAt: time.Now().Add(30 * time.Second)}, nil
	}

	r := gin.New()
	r.GET("/api", f.guard.RateLimit(10, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := performRequest(r, http.MethodGet, "/api", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
	if code := errorCode(t, w); code != "RATE_LIMITED" {
		t.Errorf("code = %s, want RATE_LIMITED", code)
	}
	// Anonymous requests are keyed by client IP.
	if seenKey == "" || seenKey[:7] != "api:ip:" {
		t.Errorf("key = %q, want api:ip: prefix", seenKey)
	}
}

func TestRateLimitKeysByUserWhenAuthenticated(t *testing.T) {
	f := newGuardFixture()
	f.allowSession(&domain.User{ID: 42, Role: domain.RoleBuyer, Status: domain.StatusActive})

	var seenKey string
	f.limiter.CheckFunc = func(ctx context.Context, key string, max int, window time.Duration) (*domain.RateLimitResult, error) {
		seenKey = key
		return &domain.RateLimitResult{Limited: false}, nil
	}

	r := gin.New()
	r.GET("/api", f.guard.Authenticate(), f.guard.RateLimit(10, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	performRequest(r, http.MethodGet, "/api", bearer("tok"))
	if seenKey != "api:user:42:/api" {
		t.Errorf("key = %q, want api:user:42:/api", seenKey)
	}
}

func TestRequireStoreOwnership(t *testing.T) {
	tests := []struct {
		name     string
		user     *domain.User
		ownStore *domain.Store
		path     string
		wantCode int
	}{
		{
			name:     "seller reads own store",
			user:     &domain.User{ID: 1, Role: domain.RoleSeller, Status: domain.StatusActive},
			ownStore: &domain.Store{ID: 10, SellerID: 1},
			path:     "/stores/10",
			wantCode: http.StatusOK,
		},
		{
			name:     "seller rejected on another store",
			user:     &domain.User{ID: 1, Role: domain.RoleSeller, Status: domain.StatusActive},
			ownStore: &domain.Store{ID: 10, SellerID: 1},
			path:     "/stores/11",
			wantCode: http.StatusForbidden,
		},
		{
			name:     "seller without a store rejected",
			user:     &domain.User{ID: 1, Role: domain.RoleSeller, Status: domain.StatusActive},
			path:     "/stores/10",
			wantCode: http.StatusForbidden,
		},
		{
			name:     "admin overrides ownership",
			user:     &domain.User{ID: 2, Role: domain.RoleAdmin, Status: domain.StatusActive},
			path:     "/stores/10",
			wantCode: http.StatusOK,
		},
		{
			name:     "non-numeric id rejected",
			user:     &domain.User{ID: 1, Role: domain.RoleSeller, Status: domain.StatusActive},
			path:     "/stores/abc",
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGuardFixture()
			f.allowSession(tt.user)
			if tt.ownStore != nil {
				f.stores.FindBySellerFunc = func(ctx context.Context, sellerID uint) (*domain.Store, error) {
					return tt.ownStore, nil
				}
			}

			r := gin.New()
			r.GET("/stores/:id", f.guard.Authenticate(), f.guard.RequireStoreOwnership("id"), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := performRequest(r, http.MethodGet, tt.path, bearer("tok"))
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}
