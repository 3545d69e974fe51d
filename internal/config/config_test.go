package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 120*time.Second, cfg.OTPTTL)
	assert.Equal(t, 14*24*time.Hour, cfg.ReservationTTL)
	assert.True(t, cfg.Zarinpal.Sandbox)
	assert.Equal(t, 10*time.Second, cfg.Zarinpal.Timeout)
	assert.NotEmpty(t, cfg.CORSAllowedOrigin)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("ZARINPAL_TIMEOUT", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "ZARINPAL_TIMEOUT")
}

func TestLoad_SuccessURLNeedsPlaceholder(t *testing.T) {
	t.Setenv("PAYMENT_SUCCESS_URL", "/payment/success")
	_, err := Load()
	assert.ErrorContains(t, err, "PAYMENT_SUCCESS_URL")
}

func TestLoad_ProdRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("ZARINPAL_MERCHANT_ID", "merchant")
	t.Setenv("ZARINPAL_SANDBOX", "false")
	t.Setenv("COOKIE_SECURE", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://hotel.example, https://admin.hotel.example")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://hotel.example", "https://admin.hotel.example"}, cfg.CORSAllowedOrigin)
}
