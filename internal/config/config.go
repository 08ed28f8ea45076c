package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// DefaultAllowedOrigins is the origin allow-list used when ALLOWED_ORIGINS is unset.
var DefaultAllowedOrigins = []string{
	"http://localhost:8080",
	"http://localhost:1234",
	"http://movies.com",
	"http://midu.dev",
}

// Config holds the runtime configuration of the movie API.
type Config struct {
	Port            string
	AllowedOrigins  []string
	StoreDriver     string
	SQLiteDSN       string
	SeedFile        string
	RabbitMQURL     string
	RateLimitMax    int
	RateLimitWindow time.Duration
	MetricsEnabled  bool
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// Load reads the configuration from environment variables, falling back to defaults.
func Load() (Config, error) {
	return FromViper(viper.New())
}

// FromViper reads the configuration from v after registering defaults and
// enabling environment lookup on it.
func FromViper(v *viper.Viper) (Config, error) {
	v.SetDefault("PORT", "1234")
	v.SetDefault("ALLOWED_ORIGINS", strings.Join(DefaultAllowedOrigins, ","))
	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("SQLITE_DSN", "file::memory:?cache=shared")
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RATE_LIMIT_MAX", 0)
	v.SetDefault("RATE_LIMIT_WINDOW", time.Minute)
	v.SetDefault("METRICS_ENABLED", true)
	v.AutomaticEnv()

	cfg := Config{
		Port:            v.GetString("PORT"),
		AllowedOrigins:  splitList(v.GetString("ALLOWED_ORIGINS")),
		StoreDriver:     strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		SQLiteDSN:       v.GetString("SQLITE_DSN"),
		SeedFile:        v.GetString("SEED_FILE"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		RateLimitMax:    v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow: v.GetDuration("RATE_LIMIT_WINDOW"),
		MetricsEnabled:  v.GetBool("METRICS_ENABLED"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimPrefix(c.Port, ":") == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	switch c.StoreDriver {
	case DriverMemory:
	case DriverSQLite:
		if !strings.Contains(c.SQLiteDSN, "memory") {
			return fmt.Errorf("SQLITE_DSN %q must point at an in-memory database", c.SQLiteDSN)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", c.StoreDriver, DriverMemory, DriverSQLite)
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS must list at least one origin")
	}
	for _, o := range c.AllowedOrigins {
		u, err := url.Parse(o)
		if err != nil || u.Scheme == "" || u.Host == "" || (u.Path != "" && u.Path != "/") {
			return fmt.Errorf("invalid origin %q in ALLOWED_ORIGINS", o)
		}
	}
	if c.RateLimitMax < 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must not be negative")
	}
	if c.RateLimitMax > 0 && c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
