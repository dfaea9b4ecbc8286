package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_PROVIDER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.UTC, cfg.Timezone)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Second, cfg.ServiceTimeout)
	assert.Equal(t, "memory", cfg.Storage.Provider)
	assert.Equal(t, "user-uploads", cfg.Storage.UploadsBucket)
	assert.Equal(t, "event-flyers", cfg.Storage.FlyersBucket)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("APP_TIMEZONE", "America/Chicago")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://boothly.app, https://www.boothly.app ,")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", cfg.Timezone.String())
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, []string{"https://boothly.app", "https://www.boothly.app"}, cfg.AllowedOrigins)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Broker.Brokers)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("GO_ENV", "test")

	t.Setenv("APP_TIMEZONE", "Mars/Olympus")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("JWT_EXPIRY", "forever")
	_, err = Load()
	require.Error(t, err)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
