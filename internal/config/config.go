package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port        int    `yaml:"port"`
	GinMode     string `yaml:"gin_mode"`
	Environment string `yaml:"environment"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	TTL         string `yaml:"ttl"`
	Length      int    `yaml:"length"`
	MaxAttempts int    `yaml:"max_attempts"`
	HourlyCap   int    `yaml:"hourly_cap"`
}

type CookieConfig struct {
	AccessName  string `yaml:"access_name"`
	RefreshName string `yaml:"refresh_name"`
	Domain      string `yaml:"domain"`
	Secure      bool   `yaml:"secure"`
}

type RateLimitConfig struct {
	Backend       string `yaml:"backend"` // "memory" or "redis"
	Requests      int    `yaml:"requests"`
	Window        string `yaml:"window"`
	SweepInterval string `yaml:"sweep_interval"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type SMTPConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	FromEmail string `yaml:"from_email"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type BootstrapConfig struct {
	SuperAdminEmail string `yaml:"super_admin_email"`
	SuperAdminPhone string `yaml:"super_admin_phone"`
	SuperAdminName  string `yaml:"super_admin_name"`
}

type CleanupConfig struct {
	Interval string `yaml:"interval"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	OTP       OTPConfig       `yaml:"otp"`
	Cookies   CookieConfig    `yaml:"cookies"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Casbin    CasbinConfig    `yaml:"casbin"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
	Cleanup   CleanupConfig   `yaml:"cleanup"`
}

// Config is the resolved runtime configuration. Secrets come from the
// environment; the YAML file carries defaults for everything else.
type Config struct {
	Port        string
	GinMode     string
	Environment string

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	JWTIssuer  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	OTPTTL         time.Duration
	OTPLength      int
	OTPMaxAttempts int
	OTPHourlyCap   int

	CookieAccessName  string
	CookieRefreshName string
	CookieDomain      string
	CookieSecure      bool

	RateLimitBackend  string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitSweep    time.Duration

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	CasbinModelPath string

	SuperAdminEmail string
	SuperAdminPhone string
	SuperAdminName  string

	CleanupInterval time.Duration
}

// IsProduction reports whether the service runs with production hardening
// (secure cookies, JSON logs).
func (c *Config) IsProduction() bool { return c.Environment == "production" }

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load reads the YAML config file and applies environment overrides.
func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

// LoadFrom loads configuration from an explicit file path.
func LoadFrom(path string) (*Config, error) {
	file, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}

	durations := map[string]*time.Duration{}
	cfg := &Config{
		Port:        strconv.Itoa(file.App.Port),
		GinMode:     file.App.GinMode,
		Environment: env("APP_ENV", file.App.Environment),

		DSN: env("DATABASE_DSN", file.Database.DSN),

		RedisAddr:     env("REDIS_ADDR", file.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:       envInt("REDIS_DB", file.Redis.DB),

		JWTSecret: env("JWT_SECRET", file.JWT.Secret),
		JWTIssuer: file.JWT.Issuer,

		OTPLength:      file.OTP.Length,
		OTPMaxAttempts: file.OTP.MaxAttempts,
		OTPHourlyCap:   envInt("OTP_HOURLY_CAP", file.OTP.HourlyCap),

		CookieAccessName:  file.Cookies.AccessName,
		CookieRefreshName: file.Cookies.RefreshName,
		CookieDomain:      file.Cookies.Domain,
		CookieSecure:      file.Cookies.Secure,

		RateLimitBackend:  env("RATE_LIMIT_BACKEND", file.RateLimit.Backend),
		RateLimitRequests: file.RateLimit.Requests,

		TwilioSID:   env("TWILIO_ACCOUNT_SID", file.Twilio.AccountSID),
		TwilioToken: env("TWILIO_AUTH_TOKEN", file.Twilio.AuthToken),
		TwilioFrom:  env("TWILIO_FROM_NUMBER", file.Twilio.FromNumber),

		SMTPHost: env("SMTP_HOST", file.SMTP.Host),
		SMTPPort: envInt("SMTP_PORT", file.SMTP.Port),
		SMTPUser: env("SMTP_USER", file.SMTP.User),
		SMTPPass: env("SMTP_PASSWORD", file.SMTP.Password),
		SMTPFrom: env("SMTP_FROM", file.SMTP.FromEmail),

		CasbinModelPath: file.Casbin.ModelPath,

		SuperAdminEmail: env("SUPER_ADMIN_EMAIL", file.Bootstrap.SuperAdminEmail),
		SuperAdminPhone: env("SUPER_ADMIN_PHONE", file.Bootstrap.SuperAdminPhone),
		SuperAdminName:  file.Bootstrap.SuperAdminName,
	}

	durations["jwt access TTL"] = &cfg.AccessTTL
	durations["jwt refresh TTL"] = &cfg.RefreshTTL
	durations["otp TTL"] = &cfg.OTPTTL
	durations["rate limit window"] = &cfg.RateLimitWindow
	durations["rate limit sweep interval"] = &cfg.RateLimitSweep
	durations["cleanup interval"] = &cfg.CleanupInterval
	raw := map[string]string{
		"jwt access TTL":            file.JWT.AccessTTL,
		"jwt refresh TTL":           file.JWT.RefreshTTL,
		"otp TTL":                   file.OTP.TTL,
		"rate limit window":         file.RateLimit.Window,
		"rate limit sweep interval": file.RateLimit.SweepInterval,
		"cleanup interval":          file.Cleanup.Interval,
	}
	for name, dst := range durations {
		d, err := time.ParseDuration(raw[name])
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = d
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must be set")
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var file ConfigFile
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &file, nil
}
