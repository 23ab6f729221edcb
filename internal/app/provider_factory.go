package app

import (
	"log/slog"

	"github.com/preston-bernstein/bestlines/internal/config"
	"github.com/preston-bernstein/bestlines/internal/metrics"
	"github.com/preston-bernstein/bestlines/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (min spacing + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns the configured provider. apiKey is only used by the live client.
func (f providerFactory) build(cfg config.Config, apiKey string) (providers.OddsProvider, error) {
	base, err := selectProvider(cfg, apiKey, f.logger)
	if err != nil {
		return nil, err
	}
	// Retries sit outside the limiter so every retried attempt is spaced too.
	limited := providers.NewRateLimitedProvider(base, cfg.MinCallInterval, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), cfg.Retry.Attempts, cfg.Retry.Backoff), nil
}
