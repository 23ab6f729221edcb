package snapshots

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
	"github.com/preston-bernstein/bestlines/internal/logging"
	"github.com/preston-bernstein/bestlines/internal/metrics"
	"github.com/preston-bernstein/bestlines/internal/providers"
)

// Source reports where a payload came from.
type Source string

const (
	SourceCache   Source = "cache"
	SourceFetched Source = "fetched"
)

// Result is the outcome of LoadOrRefresh.
type Result struct {
	Payload   odds.Payload
	FetchedAt time.Time
	Source    Source
	// WriteErr is set when a fresh payload could not be persisted. The payload is still usable.
	WriteErr error
}

// Store decides between the cached snapshot and a fresh fetch. There is no TTL: a valid
// snapshot is reused until the caller forces a refresh.
type Store struct {
	reader   *FSStore
	writer   *Writer
	provider providers.OddsProvider
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time
}

// NewStore wires a cache rooted at dir to the provider used on misses.
func NewStore(dir string, provider providers.OddsProvider, logger *slog.Logger, recorder *metrics.Recorder) *Store {
	return &Store{
		reader:   NewFSStore(dir),
		writer:   NewWriter(dir),
		provider: provider,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
	}
}

// LoadOrRefresh returns the cached payload for sportKey unless force is set or the cache is
// missing or corrupt, in which case it fetches, persists and returns the fresh payload.
// Fetch failures are returned as *providers.FetchError.
func (s *Store) LoadOrRefresh(ctx context.Context, sportKey string, force bool) (Result, error) {
	logger := logging.FromContext(ctx, s.logger)
	path := SnapshotPath(s.writer.Dir(), sportKey)

	outcome := metrics.CacheForced
	if !force {
		snap, err := s.reader.Load(sportKey)
		switch {
		case err == nil:
			s.metrics.RecordCacheLookup(sportKey, metrics.CacheHit)
			logging.Info(logger, "using cached odds",
				logging.FieldSportKey, sportKey,
				logging.FieldPath, path,
				logging.FieldCount, len(snap.Payload),
				logging.FieldAgeSeconds, int64(snap.Age(s.now()).Seconds()),
			)
			return Result{
				Payload:   snap.Payload,
				FetchedAt: snap.FetchedAt,
				Source:    SourceCache,
			}, nil
		case errors.Is(err, os.ErrNotExist):
			outcome = metrics.CacheMiss
		default:
			outcome = metrics.CacheMiss
			var corrupt *CacheCorruptError
			if errors.As(err, &corrupt) {
				outcome = metrics.CacheCorrupt
			}
			logging.Warn(logger, "cached odds unusable, refetching",
				logging.FieldSportKey, sportKey,
				logging.FieldPath, path,
				logging.FieldError, err,
			)
		}
	}
	s.metrics.RecordCacheLookup(sportKey, outcome)

	return s.refresh(ctx, logger, sportKey)
}

func (s *Store) refresh(ctx context.Context, logger *slog.Logger, sportKey string) (Result, error) {
	if s.provider == nil {
		return Result{}, &providers.FetchError{SportKey: sportKey, Err: providers.ErrProviderUnavailable}
	}

	payload, err := s.provider.FetchOdds(ctx, sportKey)
	if err != nil {
		return Result{}, &providers.FetchError{SportKey: sportKey, Err: err}
	}
	if payload == nil {
		payload = odds.Payload{}
	}

	fetchedAt := s.now().UTC()
	result := Result{
		Payload:   payload,
		FetchedAt: fetchedAt,
		Source:    SourceFetched,
	}

	snap := Snapshot{LeagueKey: sportKey, FetchedAt: fetchedAt, Payload: payload}
	if err := s.writer.Write(snap); err != nil {
		s.metrics.RecordCacheWriteFailure(sportKey)
		logging.Error(logger, "failed to persist odds snapshot", err, logging.FieldSportKey, sportKey)
		result.WriteErr = err
		return result, nil
	}
	if err := s.writer.UpdateManifest(sportKey, fetchedAt, len(payload)); err != nil {
		logging.Warn(logger, "failed to update cache manifest", logging.FieldSportKey, sportKey, logging.FieldError, err)
	}

	logging.Info(logger, "fetched fresh odds",
		logging.FieldSportKey, sportKey,
		logging.FieldCount, len(payload),
	)
	return result, nil
}
