package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/bestlines/internal/config"
	"github.com/preston-bernstein/bestlines/internal/providers"
	"github.com/preston-bernstein/bestlines/internal/providers/fixture"
	"github.com/preston-bernstein/bestlines/internal/providers/oddsapi"
)

func selectProvider(cfg config.Config, apiKey string, logger *slog.Logger) (providers.OddsProvider, error) {
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderFixture:
		return fixture.New(), nil
	case config.ProviderOddsAPI, "":
		return oddsapi.NewClient(oddsapi.Config{
			BaseURL: cfg.OddsAPI.BaseURL,
			APIKey:  apiKey,
			Region:  cfg.OddsAPI.Region,
			Timeout: cfg.OddsAPI.Timeout,
			Logger:  logger,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want %s or %s)", cfg.Provider, config.ProviderOddsAPI, config.ProviderFixture)
	}
}

// needsAPIKey reports whether the configured provider talks to the live endpoint.
func needsAPIKey(cfg config.Config) bool {
	return !strings.EqualFold(cfg.Provider, config.ProviderFixture)
}
