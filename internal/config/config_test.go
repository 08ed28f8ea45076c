package config_test

import (
	"testing"
	"time"

	"movieapi/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "1234", cfg.Port)
	assert.Equal(t, ":1234", cfg.Addr())
	assert.Equal(t, config.DefaultAllowedOrigins, cfg.AllowedOrigins)
	assert.Equal(t, config.DriverMemory, cfg.StoreDriver)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Zero(t, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.True(t, cfg.MetricsEnabled)
}

func TestFromViper_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("RATE_LIMIT_MAX", "30")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, config.DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, 30, cfg.RateLimitMax)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown driver":    {"STORE_DRIVER": "postgres"},
		"on-disk sqlite":    {"STORE_DRIVER": "sqlite", "SQLITE_DSN": "movies.db"},
		"empty origins":     {"ALLOWED_ORIGINS": " , "},
		"malformed origin":  {"ALLOWED_ORIGINS": "movies.com/path"},
		"negative limit":    {"RATE_LIMIT_MAX": "-1"},
		"zero limit window": {"RATE_LIMIT_MAX": "10", "RATE_LIMIT_WINDOW": "0s"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := config.FromViper(viper.New())
			assert.Error(t, err)
		})
	}
}
