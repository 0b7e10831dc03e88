// Package httpx assembles the gin router from handlers and middleware.
package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
	"github.com/OmarEhab007/cargoparts-sub000/internal/http/handlers"
	"github.com/OmarEhab007/cargoparts-sub000/internal/http/middleware"
	"github.com/OmarEhab007/cargoparts-sub000/internal/http/respond"
	"github.com/OmarEhab007/cargoparts-sub000/internal/services"
)

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	Auth    *handlers.AuthHandlers
	Admin   *handlers.AdminHandlers
	Stores  *handlers.StoreHandlers
	Guard   *middleware.Guard
	Logger  *slog.Logger
	GinMode string

	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// BuildRouter mounts the public, authenticated and admin route groups.
func BuildRouter(deps RouterDeps) *gin.Engine {
	if deps.GinMode != "" {
		gin.SetMode(deps.GinMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(deps.Logger))
	r.NoRoute(respond.NotFoundHandler)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	throttle := deps.Guard.RateLimit(deps.RateLimitRequests, deps.RateLimitWindow)

	auth := r.Group("/auth")
	auth.Use(throttle)
	{
		auth.POST("/register", deps.Auth.Register)
		auth.POST("/otp/request", deps.Auth.RequestOTP)
		auth.POST("/verify-email", deps.Auth.VerifyEmail)
		auth.POST("/login/request", deps.Auth.RequestLogin)
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/refresh", deps.Auth.Refresh)
	}

	authed := r.Group("/")
	authed.Use(deps.Guard.Authenticate(), throttle)
	{
		authed.GET("/auth/me", deps.Auth.Me)
		authed.POST("/auth/logout", deps.Auth.Logout)
		authed.GET("/stores/:id", deps.Guard.RequireStoreOwnership("id"), deps.Stores.Get)
	}

	admin := r.Group("/admin")
	admin.Use(deps.Guard.Authenticate(), throttle)
	{
		admin.POST("/admins", deps.Guard.RequirePermission(services.PermAdminsCreate), deps.Admin.CreateAdmin)
		admin.POST("/users/:id/promote", deps.Guard.RequirePermission(services.PermUsersPromote), deps.Admin.Promote)
		admin.POST("/users/:id/demote", deps.Guard.RequireRoles(domain.RoleSuperAdmin), deps.Admin.Demote)
		admin.POST("/users/:id/ban", deps.Guard.RequirePermission(services.PermUsersBan), deps.Admin.Ban)
		admin.POST("/users/:id/deactivate", deps.Guard.RequirePermission(services.PermUsersBan), deps.Admin.Deactivate)
		admin.POST("/users/:id/activate", deps.Guard.RequirePermission(services.PermUsersBan), deps.Admin.Activate)
		admin.GET("/policies", deps.Guard.RequirePermission(services.PermPoliciesRead), deps.Admin.Policies)
	}

	return r
}

// requestLogger emits one structured line per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("ip", c.ClientIP()))
	}
}
