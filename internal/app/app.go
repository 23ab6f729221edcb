package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/bestlines/internal/config"
	"github.com/preston-bernstein/bestlines/internal/logging"
	"github.com/preston-bernstein/bestlines/internal/metrics"
	"github.com/preston-bernstein/bestlines/internal/providers"
	"github.com/preston-bernstein/bestlines/internal/scan"
	"github.com/preston-bernstein/bestlines/internal/snapshots"
)

var (
	metricsSetup = metrics.Setup
	loadAPIKey   = config.LoadAPIKey
)

// App holds everything one bestlines invocation needs.
type App struct {
	cfg         config.Config
	logger      *slog.Logger
	metrics     *metrics.Recorder
	leagues     config.LeagueTable
	scanner     *scan.Scanner
	metricsStop func(context.Context) error
}

// New wires configuration into a ready scanner. Every error returned here is a configuration
// error: missing or empty key file, bad league table or unknown provider.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	leagues, err := config.LoadLeagueTable(cfg.LeaguesFile)
	if err != nil {
		return nil, err
	}

	var apiKey string
	if needsAPIKey(cfg) {
		if apiKey, err = loadAPIKey(cfg.KeyFile); err != nil {
			return nil, err
		}
	}

	recorder, stop := buildMetrics(ctx, cfg, logger)
	provider, err := newProviderFactory(logger, recorder).build(cfg, apiKey)
	if err != nil {
		_ = stop(ctx)
		return nil, err
	}
	return newWithProvider(cfg, logger, leagues, provider, recorder, stop), nil
}

func newWithProvider(cfg config.Config, logger *slog.Logger, leagues config.LeagueTable, provider providers.OddsProvider, recorder *metrics.Recorder, stop func(context.Context) error) *App {
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	if stop == nil {
		stop = func(context.Context) error { return nil }
	}
	store := snapshots.NewStore(cfg.CacheDir, provider, logger, recorder)
	return &App{
		cfg:         cfg,
		logger:      logger,
		metrics:     recorder,
		leagues:     leagues,
		scanner:     scan.New(leagues, store, logger, recorder),
		metricsStop: stop,
	}
}

// Leagues exposes the resolved league table.
func (a *App) Leagues() config.LeagueTable {
	return a.leagues
}

// Metrics exposes the recorder (primarily for tests).
func (a *App) Metrics() *metrics.Recorder {
	return a.metrics
}

// Scan runs one scan over the given aliases.
func (a *App) Scan(ctx context.Context, aliases []string, force bool) (scan.Report, error) {
	return a.scanner.Run(ctx, aliases, force)
}

// Close flushes telemetry. It is safe to call more than once.
func (a *App) Close(ctx context.Context) error {
	if a == nil || a.metricsStop == nil {
		return nil
	}
	stop := a.metricsStop
	a.metricsStop = nil
	if err := stop(ctx); err != nil {
		logging.Warn(a.logger, "metrics flush failed", logging.FieldError, err)
		return fmt.Errorf("flush metrics: %w", err)
	}
	return nil
}

func buildMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger) (*metrics.Recorder, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		TextfilePath: cfg.Metrics.TextfilePath,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, shutdown, err := metricsSetup(ctx, recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), func(context.Context) error { return nil }
	}
	return rec, shutdown
}
