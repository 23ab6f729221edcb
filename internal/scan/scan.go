package scan

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/bestlines/internal/config"
	"github.com/preston-bernstein/bestlines/internal/domain/odds"
	"github.com/preston-bernstein/bestlines/internal/logging"
	"github.com/preston-bernstein/bestlines/internal/metrics"
	"github.com/preston-bernstein/bestlines/internal/normalize"
	"github.com/preston-bernstein/bestlines/internal/selector"
	"github.com/preston-bernstein/bestlines/internal/snapshots"
)

// ErrNoLeagues is returned when Run is called without any alias.
var ErrNoLeagues = errors.New("no leagues requested")

// Cache supplies a league's payload, either stored or freshly fetched.
type Cache interface {
	LoadOrRefresh(ctx context.Context, sportKey string, force bool) (snapshots.Result, error)
}

// LeagueResult is the outcome of scanning one league. Err is set when the league could not
// be scanned; the other fields are then empty.
type LeagueResult struct {
	League         config.League
	Source         snapshots.Source
	FetchedAt      time.Time
	Games          []odds.GameBest
	Warnings       []*normalize.MalformedQuoteError
	SkippedMarkets int
	WriteErr       error
	Err            error
	Duration       time.Duration
}

// Report is the outcome of one scan, leagues in request order.
type Report struct {
	ScanID    string
	StartedAt time.Time
	Leagues   []LeagueResult
}

// Failed returns the number of leagues that could not be scanned.
func (r Report) Failed() int {
	n := 0
	for _, l := range r.Leagues {
		if l.Err != nil {
			n++
		}
	}
	return n
}

// Scanner runs the cache → normalize → select pipeline for each requested league.
type Scanner struct {
	leagues config.LeagueTable
	cache   Cache
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
	newID   func() string
}

// New constructs a Scanner.
func New(leagues config.LeagueTable, cache Cache, logger *slog.Logger, recorder *metrics.Recorder) *Scanner {
	return &Scanner{
		leagues: leagues,
		cache:   cache,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
}

// Run scans every alias in order. All aliases are resolved before any I/O, so an unknown alias
// fails the whole run with *config.UnknownLeagueError. Duplicates are scanned once. A failing
// league is recorded in its LeagueResult and does not stop the others.
func (s *Scanner) Run(ctx context.Context, aliases []string, force bool) (Report, error) {
	leagues, err := s.resolve(aliases)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		ScanID:    s.newID(),
		StartedAt: s.now().UTC(),
		Leagues:   make([]LeagueResult, 0, len(leagues)),
	}
	logger := s.logger
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldScanID, report.ScanID))
	}
	ctx = logging.WithLogger(ctx, logger)

	logging.Info(logger, "scan started",
		logging.FieldCount, len(leagues),
		"force", force,
	)
	for _, league := range leagues {
		report.Leagues = append(report.Leagues, s.scanLeague(ctx, logger, league, force))
	}
	logging.Info(logger, "scan finished",
		logging.FieldCount, len(report.Leagues),
		"failed", report.Failed(),
		logging.FieldDurationMS, s.now().Sub(report.StartedAt).Milliseconds(),
	)
	return report, nil
}

func (s *Scanner) resolve(aliases []string) ([]config.League, error) {
	if len(aliases) == 0 {
		return nil, ErrNoLeagues
	}
	seen := make(map[string]struct{}, len(aliases))
	out := make([]config.League, 0, len(aliases))
	for _, alias := range aliases {
		league, err := s.leagues.Resolve(alias)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[league.Alias]; dup {
			continue
		}
		seen[league.Alias] = struct{}{}
		out = append(out, league)
	}
	return out, nil
}

func (s *Scanner) scanLeague(ctx context.Context, logger *slog.Logger, league config.League, force bool) LeagueResult {
	start := time.Now()
	result := LeagueResult{League: league}
	logger = leagueLogger(logger, league)

	if err := ctx.Err(); err != nil {
		result.Err = err
	} else if s.cache == nil {
		result.Err = errors.New("odds cache not configured")
	} else {
		s.runPipeline(logging.WithLogger(ctx, logger), league, force, &result)
	}

	result.Duration = time.Since(start)
	s.metrics.RecordLeagueScan(league.SportKey, result.Duration, result.Err)

	if result.Err != nil {
		logging.Error(logger, "league scan failed", result.Err,
			logging.FieldDurationMS, result.Duration.Milliseconds(),
		)
		return result
	}
	logging.Info(logger, "league scanned",
		logging.FieldSource, string(result.Source),
		logging.FieldCount, len(result.Games),
		"dropped_quotes", len(result.Warnings),
		"skipped_markets", result.SkippedMarkets,
		logging.FieldDurationMS, result.Duration.Milliseconds(),
	)
	return result
}

func (s *Scanner) runPipeline(ctx context.Context, league config.League, force bool, result *LeagueResult) {
	logger := logging.FromContext(ctx, s.logger)

	cached, err := s.cache.LoadOrRefresh(ctx, league.SportKey, force)
	if err != nil {
		result.Err = err
		return
	}
	result.Source = cached.Source
	result.FetchedAt = cached.FetchedAt
	result.WriteErr = cached.WriteErr

	normalized := normalize.Normalize(cached.Payload)
	result.Warnings = normalized.Warnings
	result.SkippedMarkets = normalized.SkippedMarkets
	for _, w := range normalized.Warnings {
		logging.Debug(logger, "dropped malformed quote", "reason", w.Error())
	}
	if n := len(normalized.Warnings); n > 0 {
		s.metrics.RecordDroppedQuotes(league.SportKey, n)
		logging.Warn(logger, "dropped malformed quotes", logging.FieldCount, n)
	}

	result.Games = selector.SelectBest(normalized.Games)
}

func leagueLogger(logger *slog.Logger, league config.League) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String(logging.FieldLeague, league.Alias))
}
