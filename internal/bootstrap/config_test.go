package bootstrap

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitalhq/console-api/config"
	"github.com/orbitalhq/console-api/internal/observability/statsd"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "portal_session", cfg.Auth.SessionCookie)
	assert.NotEmpty(t, cfg.Backends.Registry())
}

func TestLoadConfigRejectsInvalidBackendURL(t *testing.T) {
	t.Setenv("TENANT_SERVICE_URL", "::not-a-url")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestBuildMetricsDisabled(t *testing.T) {
	sink := buildMetrics(config.ObservabilityConfig{}, slog.Default())
	assert.IsType(t, statsd.Discard{}, sink)
}

func TestBaseHost(t *testing.T) {
	assert.Equal(t, "console.example.com", baseHost("https://console.example.com"))
	assert.Equal(t, "localhost:8080", baseHost("http://localhost:8080"))
	assert.Equal(t, "", baseHost("://bad"))
}
