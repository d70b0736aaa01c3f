package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"JWT_SECRET": "secret"}))

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "backoffice", cfg.JWTIssuer)
	assert.Equal(t, "secret", cfg.MFAJWTSecret)
	assert.Equal(t, 8*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.MFATokenTTL)
	assert.Equal(t, "Backoffice", cfg.MFAIssuer)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.MailEnabled())
	assert.Empty(t, cfg.TrustedProxies)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"JWT_SECRET":       "secret",
		"MFA_JWT_SECRET":   "mfa",
		"ACCESS_TOKEN_TTL": "30m",
		"AUTO_MIGRATE":     "false",
		"BCRYPT_COST":      "12",
		"LOG_LEVEL":        "debug",
		"RESEND_API_KEY":   "re_123",
		"MAIL_FROM":        "panel@example.com",
		"APP_URL":          "https://panel.example.com/",
		"TRUSTED_PROXIES":  "10.0.0.0/8, 192.0.2.7",
	}))

	require.NoError(t, err)
	assert.Equal(t, "mfa", cfg.MFAJWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "https://panel.example.com", cfg.AppURL)
	assert.True(t, cfg.MailEnabled())
	require.Len(t, cfg.TrustedProxies, 2)
	assert.Equal(t, "10.0.0.0/8", cfg.TrustedProxies[0].String())
	assert.Equal(t, "192.0.2.7/32", cfg.TrustedProxies[1].String())
}

func TestFromEnv_Errors(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{}))
	assert.EqualError(t, err, "JWT_SECRET is required")

	_, err = FromEnv(envOf(map[string]string{"JWT_SECRET": "secret", "MFA_TOKEN_TTL": "soon"}))
	assert.ErrorContains(t, err, "MFA_TOKEN_TTL")

	_, err = FromEnv(envOf(map[string]string{"JWT_SECRET": "secret", "TRUSTED_PROXIES": "proxy.local"}))
	assert.ErrorContains(t, err, "TRUSTED_PROXIES")

	_, err = FromEnv(envOf(map[string]string{"JWT_SECRET": "secret", "LOG_LEVEL": "loud"}))
	assert.ErrorContains(t, err, "LOG_LEVEL")
}
