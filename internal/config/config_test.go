package config_test

import (
	"testing"
	"time"

	"sirwa/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "DATABASE_NAME", "STORE_DRIVER", "DEFAULT_LIST_LIMIT", "RABBITMQ_URL", "STORE_CONNECT_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, ":8000", cfg.ListenAddress())
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, int64(50), cfg.DefaultListLimit)
	assert.Equal(t, 10*time.Second, cfg.StoreConnectTimeout)
	assert.Equal(t, "sirwa.events", cfg.RabbitMQExchange)
	assert.False(t, cfg.DatabaseURLSet())
	assert.False(t, cfg.DatabaseNameSet())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "sirwa")
	t.Setenv("STORE_DRIVER", " Memory ")
	t.Setenv("DEFAULT_LIST_LIMIT", "10")
	t.Setenv("STORE_CONNECT_TIMEOUT", "2s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddress())
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, int64(10), cfg.DefaultListLimit)
	assert.Equal(t, 2*time.Second, cfg.StoreConnectTimeout)
	assert.True(t, cfg.DatabaseURLSet())
	assert.True(t, cfg.DatabaseNameSet())
}

func TestLoad_RejectsBadListLimit(t *testing.T) {
	t.Setenv("DEFAULT_LIST_LIMIT", "0")

	_, err := config.Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_LIST_LIMIT")
}
