package server

import (
	"log/slog"

	"github.com/preston-bernstein/winprob-viewer/internal/config"
	"github.com/preston-bernstein/winprob-viewer/internal/providers"
	"github.com/preston-bernstein/winprob-viewer/internal/providers/fixture"
	"github.com/preston-bernstein/winprob-viewer/internal/providers/mlbstats"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case config.ProviderFixture, "":
		return fixture.New()
	case config.ProviderMLBStats:
		return mlbstats.NewClient(mlbstats.Config{
			BaseURL:   cfg.MLB.BaseURL,
			SportID:   cfg.MLB.SportID,
			Timeout:   cfg.MLB.HTTPTimeout,
			UserAgent: cfg.MLB.UserAgent,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
