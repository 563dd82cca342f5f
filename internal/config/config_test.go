package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderpay/schedule/internal/config"
)

func TestLoadConfigRequiresDSN(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	_, err := config.LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_DSN", "file::memory:")
	t.Setenv("DATABASE_DRIVER", "sqlite3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "email_queue", cfg.RabbitMQ.Queue)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Redis.SnapshotTTL)
}

func TestLoadClientConfig(t *testing.T) {
	t.Setenv("CLIENT_BACKEND", "file")
	t.Setenv("CLIENT_DEBOUNCE_DELAY", "250ms")

	cfg, err := config.LoadClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.DebounceDelay)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.Equal(t, "localhost", cfg.Redis.Host)
}
