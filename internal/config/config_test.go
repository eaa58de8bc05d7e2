package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, 256, cfg.SendBufferSize)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNew_EnvironmentOverrides(t *testing.T) {
	t.Setenv("RELAY_ADDR", ":9999")
	t.Setenv("RELAY_ALLOWED_ORIGINS", "app.example.com,admin.example.com")
	t.Setenv("RELAY_SEND_BUFFER_SIZE", "32")
	t.Setenv("RELAY_WRITE_TIMEOUT", "3s")
	t.Setenv("RELAY_LOG_FORMAT", "json")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, []string{"app.example.com", "admin.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 32, cfg.SendBufferSize)
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestNew_RejectsNonPositiveBuffer(t *testing.T) {
	t.Setenv("RELAY_SEND_BUFFER_SIZE", "0")

	_, err := New()
	assert.Error(t, err)
}
