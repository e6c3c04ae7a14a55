package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/service"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"OAUTH2_BASE_URL", "UPSTREAM_TIMEOUT", "UPDATE_STRATEGY", "CACHE_TTL", "REDIS_URL",
		"APP_HOST", "APP_PORT", "PORT", "STATIC_DIR", "CORS_ORIGIN", "SESSION_MAX_AGE",
		"SECURE_COOKIES", "RATELIMIT_ENABLED", "ENV", "LOG_LEVEL", "LOG_FORMAT",
		"SHUTDOWN_GRACE_PERIOD", "HOUSEKEEPING_INTERVAL", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "https://api.example.com/oauth2", cfg.OAuth2BaseURL)
	require.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	require.Equal(t, service.StrategyPatch, cfg.UpdateStrategy)
	require.Equal(t, 30*time.Second, cfg.CacheTTL)
	require.Empty(t, cfg.RedisURL)
	require.Equal(t, 5*time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	require.True(t, cfg.RateLimitEnabled)
	require.False(t, cfg.SecureCookies, "dev serves plain http")
	require.Empty(t, cfg.OTLPEndpoint)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("OAUTH2_BASE_URL", "http://hydra:4445")
	t.Setenv("UPSTREAM_TIMEOUT", "3")
	t.Setenv("UPDATE_STRATEGY", "replace")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("APP_HOST", "admin.internal")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "8081")
	t.Setenv("CORS_ORIGIN", "https://a.example.com, https://b.example.com,")
	t.Setenv("RATELIMIT_ENABLED", "false")
	t.Setenv("ENV", "prod")
	t.Setenv("SECURE_COOKIES", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "http://hydra:4445", cfg.OAuth2BaseURL)
	require.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	require.Equal(t, service.StrategyReplace, cfg.UpdateStrategy)
	require.Equal(t, 2*time.Minute, cfg.CacheTTL)
	require.Equal(t, 8081, cfg.Port)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	require.False(t, cfg.RateLimitEnabled)
	require.True(t, cfg.SecureCookies)
}

func TestLoadConfigRejectsUnknownStrategy(t *testing.T) {
	t.Setenv("UPDATE_STRATEGY", "merge")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "UPDATE_STRATEGY")
}
