package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testYAML = `
app:
  port: 8080
  gin_mode: release
  environment: development
database:
  dsn: "host=localhost user=app dbname=authcore sslmode=disable"
redis:
  addr: "localhost:6379"
  db: 0
jwt:
  secret: "file-secret"
  issuer: "cargoparts-auth"
  access_ttl: 15m
  refresh_ttl: 168h
otp:
  ttl: 10m
  length: 6
  max_attempts: 5
  hourly_cap: 5
cookies:
  access_name: cp_access
  refresh_name: cp_refresh
  secure: false
rate_limit:
  backend: memory
  requests: 100
  window: 1m
  sweep_interval: 5m
casbin:
  model_path: config/rbac_model.conf
bootstrap:
  super_admin_email: root@example.com
  super_admin_name: Root
cleanup:
  interval: 1h
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	cfg, err := LoadFrom(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.JWTSecret != "file-secret" || cfg.JWTIssuer != "cargoparts-auth" {
		t.Errorf("jwt = (%q, %q)", cfg.JWTSecret, cfg.JWTIssuer)
	}
	if cfg.AccessTTL != 15*time.Minute || cfg.RefreshTTL != 168*time.Hour {
		t.Errorf("ttls = (%v, %v)", cfg.AccessTTL, cfg.RefreshTTL)
	}
	if cfg.OTPTTL != 10*time.Minute || cfg.OTPLength != 6 || cfg.OTPMaxAttempts != 5 {
		t.Errorf("otp = (%v, %d, %d)", cfg.OTPTTL, cfg.OTPLength, cfg.OTPMaxAttempts)
	}
	if cfg.RateLimitBackend != "memory" || cfg.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = (%q, %v)", cfg.RateLimitBackend, cfg.RateLimitWindow)
	}
	if cfg.CookieAccessName != "cp_access" || cfg.CookieRefreshName != "cp_refresh" {
		t.Errorf("cookies = (%q, %q)", cfg.CookieAccessName, cfg.CookieRefreshName)
	}
	if cfg.IsProduction() {
		t.Error("development config reported as production")
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_DSN", "host=db.internal user=app dbname=authcore")
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadFrom(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.JWTSecret != "env-secret" {
		t.Errorf("JWTSecret = %q, want env override", cfg.JWTSecret)
	}
	if !strings.Contains(cfg.DSN, "db.internal") {
		t.Errorf("DSN = %q, want env override", cfg.DSN)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d, want 3", cfg.RedisDB)
	}
	if !cfg.IsProduction() {
		t.Error("APP_ENV=production not applied")
	}
}

func TestLoadFromMissingSecret(t *testing.T) {
	content := strings.Replace(testYAML, `secret: "file-secret"`, `secret: ""`, 1)
	if _, err := LoadFrom(writeConfig(t, content)); err == nil {
		t.Fatal("expected error for empty jwt secret")
	}
}

func TestLoadFromBadDuration(t *testing.T) {
	content := strings.Replace(testYAML, "access_ttl: 15m", "access_ttl: soon", 1)
	if _, err := LoadFrom(writeConfig(t, content)); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
