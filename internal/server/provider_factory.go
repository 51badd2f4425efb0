package server

import (
	"log/slog"

	"github.com/preston-bernstein/winprob-viewer/internal/config"
	"github.com/preston-bernstein/winprob-viewer/internal/metrics"
	"github.com/preston-bernstein/winprob-viewer/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + instrumentation).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// Build assembles the configured provider. The CLI uses it outside the server.
func Build(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.DataProvider {
	return newProviderFactory(logger, recorder).build(cfg)
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	base := selectProvider(cfg, f.logger)
	limited := providers.NewRateLimitedProvider(base, cfg.MLB.RequestsPerMinute, f.logger)
	return providers.NewInstrumentedProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base))
}
