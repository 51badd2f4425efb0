package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/preston-bernstein/winprob-viewer/internal/providers"
	"github.com/preston-bernstein/winprob-viewer/internal/timeutil"
)

// Config holds runtime configuration for the viewer host.
type Config struct {
	Port          string   `envconfig:"PORT" default:"4000"`
	Provider      string   `envconfig:"PROVIDER" default:"fixture"`
	BootstrapDate string   `envconfig:"BOOTSTRAP_DATE"`
	Timezone      string   `envconfig:"TIMEZONE" default:"America/New_York"`
	CORSOrigins   []string `envconfig:"CORS_ALLOW_ORIGINS"`
	LogLevel      string   `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string   `envconfig:"LOG_FORMAT" default:"text"`

	MLB     MLBConfig     `ignored:"true"`
	Metrics MetricsConfig `ignored:"true"`
}

// Load reads configuration from the environment, applying defaults for unset keys.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := envconfig.Process(mlbPrefix, &cfg.MLB); err != nil {
		return Config{}, fmt.Errorf("load mlb config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Metrics); err != nil {
		return Config{}, fmt.Errorf("load metrics config: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the host cannot start with.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMLBStats, ProviderFixture:
	default:
		return fmt.Errorf("unknown provider %q (expected %s or %s)", c.Provider, ProviderMLBStats, ProviderFixture)
	}
	if c.BootstrapDate != "" {
		if _, err := timeutil.ParseDate(c.BootstrapDate); err != nil {
			return fmt.Errorf("invalid BOOTSTRAP_DATE %q (expected YYYY-MM-DD)", c.BootstrapDate)
		}
	}
	if c.MLB.SportID <= 0 {
		return fmt.Errorf("MLB_SPORT_ID must be positive, got %d", c.MLB.SportID)
	}
	if c.MLB.HTTPTimeout <= 0 {
		return fmt.Errorf("MLB_HTTP_TIMEOUT must be positive, got %s", c.MLB.HTTPTimeout)
	}
	if c.MLB.RequestsPerMinute <= 0 {
		return fmt.Errorf("MLB_REQUESTS_PER_MINUTE must be positive, got %d", c.MLB.RequestsPerMinute)
	}
	return nil
}

// StartDate resolves the session's first date: BOOTSTRAP_DATE when set, otherwise today in Timezone.
func (c Config) StartDate(now time.Time) string {
	if c.BootstrapDate != "" {
		return c.BootstrapDate
	}
	return timeutil.Today(now, providers.ResolveTimezone(c.Timezone))
}
