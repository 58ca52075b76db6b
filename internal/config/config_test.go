package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/invoice-studio/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"REDIS_URL":            "redis://localhost:6379/0",
		"APP_ENV":              "",
		"PORT":                 "",
		"SESSION_TTL":          "",
		"CORS_ALLOWED_ORIGINS": "",
		"RATE_LIMIT_PER_MIN":   "",
		"MAX_BODY_BYTES":       "",
	})
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 120, cfg.RateLimitPerMin)
	require.Equal(t, int64(4<<20), cfg.MaxBodyBytes)
}

func TestLoadRequiresRedisURL(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{"REDIS_URL": ""})
	require.Error(t, err)
}

func TestLoadParsesOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"REDIS_URL":            "redis://localhost:6379/1",
		"PORT":                 "9090",
		"SESSION_TTL":          "30m",
		"CORS_ALLOWED_ORIGINS": "https://a.test, https://b.test",
		"RATE_LIMIT_PER_MIN":   "10",
	})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSAllowedOrigins)
	require.Equal(t, 10, cfg.RateLimitPerMin)
}
