package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "portfolio", cfg.Database.Name)
	assert.Equal(t, 5, cfg.Security.ContactRateLimit)
	assert.Equal(t, time.Hour, cfg.Security.ContactRateWindow)
	assert.Equal(t, 3, cfg.Security.LoginFailureLimit)
	assert.Equal(t, 8*time.Hour, cfg.Security.SessionTTL)
	assert.True(t, cfg.Security.TwoFactorEnabled)
	assert.Equal(t, "development", cfg.App.Environment)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CONTACT_RATE_LIMIT", "10")
	t.Setenv("CONTACT_RATE_WINDOW", "30m")
	t.Setenv("TWO_FACTOR_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Security.ContactRateLimit)
	assert.Equal(t, 30*time.Minute, cfg.Security.ContactRateWindow)
	assert.False(t, cfg.Security.TwoFactorEnabled)
}

func TestValidate(t *testing.T) {
	t.Run("rate limit floor", func(t *testing.T) {
		t.Setenv("CONTACT_RATE_LIMIT", "0")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CONTACT_RATE_LIMIT")
	})

	t.Run("dev code forbidden in production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("TWO_FACTOR_DEV_CODE", "123456")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TWO_FACTOR_DEV_CODE")
	})

	t.Run("dev code allowed outside production", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("TWO_FACTOR_DEV_CODE", "123456")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "123456", cfg.Security.TwoFactorDevCode)
	})

	t.Run("bad duration falls back to default", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "not-a-duration")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8*time.Hour, cfg.Security.SessionTTL)
	})
}
