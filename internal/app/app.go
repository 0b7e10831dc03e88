// Package app wires configuration, infrastructure, services and the HTTP
// layer into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
	"github.com/OmarEhab007/cargoparts-sub000/internal/config"
	httpx "github.com/OmarEhab007/cargoparts-sub000/internal/http"
	"github.com/OmarEhab007/cargoparts-sub000/internal/http/handlers"
	"github.com/OmarEhab007/cargoparts-sub000/internal/http/middleware"
	"github.com/OmarEhab007/cargoparts-sub000/internal/infrastructure/auth"
	"github.com/OmarEhab007/cargoparts-sub000/internal/infrastructure/database"
	"github.com/OmarEhab007/cargoparts-sub000/internal/infrastructure/notifications"
	"github.com/OmarEhab007/cargoparts-sub000/internal/infrastructure/repositories"
	"github.com/OmarEhab007/cargoparts-sub000/internal/ratelimit"
	"github.com/OmarEhab007/cargoparts-sub000/internal/services"
)

// Run builds the service from cfg and serves until SIGINT or SIGTERM.
func Run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Rate limiting defaults to the in-process counter; the Redis backend
	// keeps counts coherent across replicas.
	var limiter domain.RateLimiter
	switch cfg.RateLimitBackend {
	case "redis":
		client := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := database.Ping(ctx, client); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		defer client.Close()
		limiter = ratelimit.NewRedisLimiter(client)
	default:
		mem := ratelimit.NewMemoryLimiter()
		mem.StartSweep(cfg.RateLimitSweep)
		defer mem.StopSweep()
		limiter = mem
	}

	casbinSvc, err := auth.NewCasbinService(db, cfg.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("casbin: %w", err)
	}

	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	storeRepo := repositories.NewStoreRepository(db)

	tokens := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)

	sms := notifications.NewTwilioSMS(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, logger)
	mailer := notifications.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, logger)
	notifier := notifications.NewNotifier(sms, mailer, logger)

	otpSvc := services.NewOTPService(otpRepo, userRepo, notifier, limiter, services.OTPConfig{
		TTL:         cfg.OTPTTL,
		Length:      cfg.OTPLength,
		MaxAttempts: cfg.OTPMaxAttempts,
		HourlyCap:   cfg.OTPHourlyCap,
	}, logger)

	sessionSvc := services.NewSessionService(sessionRepo, userRepo, tokens, services.SessionConfig{
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	}, logger)

	authSvc := services.NewAuthService(userRepo, otpSvc, sessionSvc, logger)

	adminSvc := services.NewAdminService(userRepo, sessionSvc, notifier, services.BootstrapConfig{
		SuperAdminEmail: cfg.SuperAdminEmail,
		SuperAdminPhone: cfg.SuperAdminPhone,
		SuperAdminName:  cfg.SuperAdminName,
	}, logger)

	policySvc := services.NewPolicyService(casbinSvc.E)
	if err := policySvc.SeedDefaultPolicies(); err != nil {
		return fmt.Errorf("seed policies: %w", err)
	}

	if err := adminSvc.EnsureSuperAdmin(ctx); err != nil {
		return fmt.Errorf("bootstrap super admin: %w", err)
	}

	cleaner := services.NewCleaner(otpRepo, sessionRepo, cfg.CleanupInterval, logger)
	cleaner.Start(ctx)
	defer cleaner.Stop()

	guard := middleware.NewGuard(sessionSvc, tokens, userRepo, policySvc, limiter, storeRepo, cfg.CookieAccessName, logger)

	cookies := &handlers.CookieWriter{
		AccessName:  cfg.CookieAccessName,
		RefreshName: cfg.CookieRefreshName,
		Domain:      cfg.CookieDomain,
		Secure:      cfg.CookieSecure || cfg.IsProduction(),
		AccessTTL:   cfg.AccessTTL,
		RefreshTTL:  cfg.RefreshTTL,
	}

	router := httpx.BuildRouter(httpx.RouterDeps{
		Auth:              handlers.NewAuthHandlers(authSvc, cookies, logger),
		Admin:             handlers.NewAdminHandlers(adminSvc, policySvc, logger),
		Stores:            handlers.NewStoreHandlers(storeRepo, logger),
		Guard:             guard,
		Logger:            logger,
		GinMode:           cfg.GinMode,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr), slog.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
