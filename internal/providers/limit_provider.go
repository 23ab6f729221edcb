package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
	"github.com/preston-bernstein/bestlines/internal/logging"
)

// rateLimitedProvider wraps an OddsProvider and enforces a minimum interval between upstream calls.
type rateLimitedProvider struct {
	next     OddsProvider
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewRateLimitedProvider returns an OddsProvider that spaces calls by at least interval.
// The first call goes through immediately; later calls block until the interval has elapsed
// so multi-league scans stay under upstream quotas. A non-positive interval disables spacing.
func NewRateLimitedProvider(next OddsProvider, interval time.Duration, logger *slog.Logger) OddsProvider {
	if interval <= 0 {
		return next
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *rateLimitedProvider) FetchOdds(ctx context.Context, sportKey string) (odds.Payload, error) {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		}
		return nil, ErrProviderUnavailable
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() {
		if wait := p.last.Add(p.interval).Sub(p.now()); wait > 0 {
			logWithProvider(ctx, p.logger, slog.LevelInfo, "rate-limited", "waiting before upstream call",
				logging.FieldSportKey, sportKey,
				"wait_ms", wait.Milliseconds(),
			)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
	p.last = p.now()
	return p.next.FetchOdds(ctx, sportKey)
}
