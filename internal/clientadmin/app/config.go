package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/service"
	"github.com/aussiebroadwan/clientadmin/pkg/tracex"
)

type Config struct {
	OAuth2BaseURL   string                 // Registration API base URL (default: https://api.example.com/oauth2)
	UpstreamTimeout time.Duration          // Timeout of one upstream call (default: 10s)
	UpdateStrategy  service.UpdateStrategy // patch or replace (default: patch)

	CacheTTL time.Duration // Lifetime of a cached client list (default: 30s)
	RedisURL string        // Optional: redis://... enables the shared cache, otherwise in-memory

	HousekeepingInterval time.Duration // In-memory cache sweep interval (default: 5m)

	Host        string   // Host the panel is reached on (default: localhost)
	Port        int      // HTTP server port (default: 3000)
	StaticDir   string   // Optional: directory holding the browser shell
	CORSOrigins []string // Allowed origins (default: http://{Host}:{Port})

	SessionMaxAge    time.Duration // Session cookie lifetime (default: 12h)
	SecureCookies    bool          // Set Secure on the session cookie (default: true outside dev)
	RateLimitEnabled bool          // Apply the per-session rate limit profiles (default: true)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	OTLPEndpoint string // Optional: OpenTelemetry collector, enables tracing
}

func LoadConfig() (Config, error) {
	cfg := Config{
		OAuth2BaseURL:   getEnvOrDefault("OAUTH2_BASE_URL", "https://api.example.com/oauth2"),
		UpstreamTimeout: getEnvDurationOrDefault("UPSTREAM_TIMEOUT", 10*time.Second),

		CacheTTL: getEnvDurationOrDefault("CACHE_TTL", 30*time.Second),
		RedisURL: os.Getenv("REDIS_URL"),

		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 5*time.Minute),

		Host:      getEnvOrDefault("APP_HOST", "localhost"),
		Port:      getEnvIntOrDefault("APP_PORT", getEnvIntOrDefault("PORT", 3000)),
		StaticDir: os.Getenv("STATIC_DIR"),

		SessionMaxAge:    getEnvDurationOrDefault("SESSION_MAX_AGE", 12*time.Hour),
		RateLimitEnabled: getEnvBoolOrDefault("RATELIMIT_ENABLED", true),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
	cfg.SecureCookies = getEnvBoolOrDefault("SECURE_COOKIES", cfg.Env != "dev")

	strategy, err := service.ParseUpdateStrategy(getEnvOrDefault("UPDATE_STRATEGY", string(service.StrategyPatch)))
	if err != nil {
		return Config{}, fmt.Errorf("UPDATE_STRATEGY: %w", err)
	}
	cfg.UpdateStrategy = strategy

	if origins := os.Getenv("CORS_ORIGIN"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	} else {
		cfg.CORSOrigins = []string{fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port)}
	}

	cfg.OTLPEndpoint = tracex.Endpoint()

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
