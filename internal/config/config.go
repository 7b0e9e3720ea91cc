// Package config loads app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	Port      int    `mapstructure:"PORT"`
	Env       string `mapstructure:"APP_ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// DatabaseURL is the Postgres DSN
	DatabaseURL string `mapstructure:"DB_CONNECTION_STR"`
	// AllowOrigin is a comma-separated list of CORS origins
	AllowOrigin string `mapstructure:"ALLOW_ORIGIN"`
	// RedisURL enables the shared rate-limit and token blacklist stores when set
	RedisURL           string `mapstructure:"REDIS_URL"`
	RateLimitPerSecond int    `mapstructure:"RATE_LIMIT_REQUESTS_PER_SECOND"`

	SecretKey    string `mapstructure:"SECRET_KEY"`
	JWTIssuer    string `mapstructure:"JWT_ISSUER"`
	JWTAccessTTL string `mapstructure:"JWT_ACCESS_TTL"`

	GoogleClientID     string `mapstructure:"GOOGLE_AUTH_CLIENT"`
	GoogleClientSecret string `mapstructure:"GOOGLE_AUTH_SECRET"`
	OAuthRedirectURL   string `mapstructure:"OAUTH_REDIRECT_URL"`
	GoogleUserInfoURL  string `mapstructure:"GOOGLE_USERINFO_URL"`

	// InternalAPIKey guards the direct confirmation email endpoint
	InternalAPIKey string `mapstructure:"INTERNAL_API_KEY"`

	SMTPHost         string `mapstructure:"SMTP_HOST"`
	SMTPPort         int    `mapstructure:"SMTP_PORT"`
	// SMTPTimeoutStr bounds a single delivery attempt
	SMTPTimeoutStr   string `mapstructure:"SMTP_TIMEOUT"`
	EmailUser        string `mapstructure:"EMAIL_USER"`
	EmailPassword    string `mapstructure:"EMAIL_PASSWORD"`
	EmailFrom        string `mapstructure:"EMAIL_FROM"`
	EmailCC          string `mapstructure:"EMAIL_CC"`
	SupportEmail     string `mapstructure:"SUPPORT_EMAIL"`
	EmailMaxAttempts int    `mapstructure:"EMAIL_MAX_ATTEMPTS"`
	EmailBackoffBase string `mapstructure:"EMAIL_BACKOFF_BASE"`
	EmailRetryLimit  int    `mapstructure:"EMAIL_RETRY_CEILING"`
	EmailTimezone    string `mapstructure:"EMAIL_TIMEZONE"`

	// PositionsFile optionally replaces the built-in position catalog
	PositionsFile string `mapstructure:"POSITIONS_FILE"`
}

var defaults = map[string]interface{}{
	"PORT":                           8080,
	"APP_ENV":                        "development",
	"LOG_LEVEL":                      "info",
	"LOG_FORMAT":                     "text",
	"DB_CONNECTION_STR":              "",
	"ALLOW_ORIGIN":                   "",
	"REDIS_URL":                      "",
	"RATE_LIMIT_REQUESTS_PER_SECOND": 5,
	"SECRET_KEY":                     "",
	"JWT_ISSUER":                     "standards-board",
	"JWT_ACCESS_TTL":                 "1h",
	"GOOGLE_AUTH_CLIENT":             "",
	"GOOGLE_AUTH_SECRET":             "",
	"OAUTH_REDIRECT_URL":             "",
	"GOOGLE_USERINFO_URL":            "https://www.googleapis.com/oauth2/v2/userinfo",
	"INTERNAL_API_KEY":               "",
	"SMTP_HOST":                      "smtp.gmail.com",
	"SMTP_PORT":                      587,
	"SMTP_TIMEOUT":                   "10s",
	"EMAIL_USER":                     "",
	"EMAIL_PASSWORD":                 "",
	"EMAIL_FROM":                     "BIS Standards Club VIT <noreply@bisclub.com>",
	"EMAIL_CC":                       "support@standardsvit.live",
	"SUPPORT_EMAIL":                  "standardsclub@vit.ac.in",
	"EMAIL_MAX_ATTEMPTS":             3,
	"EMAIL_BACKOFF_BASE":             "2s",
	"EMAIL_RETRY_CEILING":            5,
	"EMAIL_TIMEZONE":                 "Asia/Kolkata",
	"POSITIONS_FILE":                 "",
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // missing .env is fine

	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SecretKey == "" {
		return errors.New("config: SECRET_KEY must be set")
	}
	if c.Port <= 0 {
		return errors.New("config: PORT must be positive")
	}
	if c.EmailMaxAttempts < 1 {
		return errors.New("config: EMAIL_MAX_ATTEMPTS must be at least 1")
	}
	if c.EmailRetryLimit < 1 {
		return errors.New("config: EMAIL_RETRY_CEILING must be at least 1")
	}
	if _, err := time.LoadLocation(c.EmailTimezone); err != nil {
		return fmt.Errorf("config: EMAIL_TIMEZONE: %w", err)
	}
	if _, err := time.ParseDuration(c.EmailBackoffBase); err != nil {
		return fmt.Errorf("config: EMAIL_BACKOFF_BASE: %w", err)
	}
	if d, err := time.ParseDuration(c.SMTPTimeoutStr); err != nil || d <= 0 {
		return errors.New("config: SMTP_TIMEOUT must be a positive duration")
	}
	return nil
}

// AccessTTL parses JWTAccessTTL as a time.Duration. Returns 1h if unset or invalid.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTAccessTTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// BackoffBase returns the first delay between email delivery attempts
func (c *Config) BackoffBase() time.Duration {
	d, err := time.ParseDuration(c.EmailBackoffBase)
	if err != nil || d < 0 {
		return 2 * time.Second
	}
	return d
}

// SMTPTimeout returns the per-attempt SMTP timeout. Returns 10s if unset or invalid.
func (c *Config) SMTPTimeout() time.Duration {
	d, err := time.ParseDuration(c.SMTPTimeoutStr)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Location returns the timezone used to format dates in emails
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.EmailTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AllowOrigins splits AllowOrigin into trimmed, non-empty origins
func (c *Config) AllowOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// IsProduction reports whether APP_ENV is production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
