package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "standards-board", cfg.JWTIssuer)
	assert.Equal(t, time.Hour, cfg.AccessTTL())
	assert.Equal(t, 3, cfg.EmailMaxAttempts)
	assert.Equal(t, 5, cfg.EmailRetryLimit)
	assert.Equal(t, 2*time.Second, cfg.BackoffBase())
	assert.Equal(t, "Asia/Kolkata", cfg.Location().String())
	assert.Equal(t, 10*time.Second, cfg.SMTPTimeout())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("EMAIL_RETRY_CEILING", "7")
	t.Setenv("ALLOW_ORIGIN", "http://localhost:3000, https://apply.example.com,")
	t.Setenv("APP_ENV", "Production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL())
	assert.Equal(t, 7, cfg.EmailRetryLimit)
	assert.Equal(t, []string{"http://localhost:3000", "https://apply.example.com"}, cfg.AllowOrigins())
	assert.True(t, cfg.IsProduction())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "SECRET_KEY")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("EMAIL_MAX_ATTEMPTS", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "EMAIL_MAX_ATTEMPTS")

	t.Setenv("EMAIL_MAX_ATTEMPTS", "3")
	t.Setenv("EMAIL_TIMEZONE", "Mars/Olympus")

	_, err = Load()
	assert.ErrorContains(t, err, "EMAIL_TIMEZONE")

	t.Setenv("EMAIL_TIMEZONE", "Asia/Kolkata")
	t.Setenv("SMTP_TIMEOUT", "0s")

	_, err = Load()
	assert.ErrorContains(t, err, "SMTP_TIMEOUT")
}
