package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, BackendFile, cfg.Cart.Backend)
	assert.Equal(t, "memory", cfg.Cart.CouponPersistence)
	assert.Equal(t, "919963163777", cfg.Checkout.WhatsAppNumber)
	assert.Equal(t, "₹", cfg.Checkout.CurrencySymbol)
	assert.True(t, cfg.CatalogFallback)
	assert.Empty(t, cfg.DBConnString)
	assert.Equal(t, "100", cfg.Checkout.PointsPer.String())
	assert.Equal(t, 10000, cfg.Cart.MaxSessions)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CART_BACKEND", "Redis")
	t.Setenv("CART_COUPON_PERSISTENCE", "slot")
	t.Setenv("CART_TTL", "72h")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := FromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, BackendRedis, cfg.Cart.Backend)
	assert.Equal(t, "slot", cfg.Cart.CouponPersistence)
	assert.Equal(t, 72*time.Hour, cfg.Cart.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestFromEnv_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\nWHATSAPP_NUMBER=15550001111\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("WHATSAPP_NUMBER", "")
	os.Unsetenv("WHATSAPP_NUMBER")

	cfg, err := FromEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "15550001111", cfg.Checkout.WhatsAppNumber)
}

func TestFromEnv_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("CART_BACKEND", "sqlite")
	_, err := FromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CART_BACKEND")
}

func TestFromEnv_RejectsUnknownCouponPolicy(t *testing.T) {
	t.Setenv("CART_COUPON_PERSISTENCE", "cookie")
	_, err := FromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestFromEnv_PostgresBackendNeedsDSN(t *testing.T) {
	t.Setenv("CART_BACKEND", "postgres")
	t.Setenv("DB_DSN", "")
	_, err := FromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)

	t.Setenv("DB_DSN", "postgres://localhost/storefront")
	cfg, err := FromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.Cart.Backend)
}

func TestFromEnv_PointsPer(t *testing.T) {
	t.Setenv("CHECKOUT_POINTS_PER", "250.5")
	cfg, err := FromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "250.5", cfg.Checkout.PointsPer.String())

	t.Setenv("CHECKOUT_POINTS_PER", "-1")
	_, err = FromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestFromEnv_MaxSessionsMustBePositive(t *testing.T) {
	t.Setenv("CART_MAX_SESSIONS", "0")
	_, err := FromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CART_MAX_SESSIONS")
}
