package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
	"github.com/preston-bernstein/bestlines/internal/logging"
	"github.com/preston-bernstein/bestlines/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 500 * time.Millisecond
	maxBackoff           = 30 * time.Second
)

// retryingProvider wraps an OddsProvider with retry/backoff behavior.
type retryingProvider struct {
	inner        OddsProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries and records every attempt.
// If maxAttempts/initial are <= 0, defaults are used. Rate-limited responses wait for
// Retry-After when the upstream sends one.
func NewRetryingProvider(inner OddsProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, initial time.Duration) OddsProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			b.Reset()
			return b
		},
	}
}

func (r *retryingProvider) FetchOdds(ctx context.Context, sportKey string) (odds.Payload, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	b := r.newBackOff()
	var lastErr error
	attempts := 0

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		attempts = attempt
		start := time.Now()
		payload, err := r.inner.FetchOdds(ctx, sportKey)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return payload, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if !IsRetryable(err) || attempt == r.maxAttempts {
			break
		}

		delay := r.computeDelay(err, b)
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			logging.FieldSportKey, sportKey,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			logging.FieldError, err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed",
		logging.FieldSportKey, sportKey,
		"attempts", attempts,
		logging.FieldError, lastErr,
	)
	return nil, lastErr
}

// computeDelay prefers the upstream's Retry-After and otherwise takes the next jittered
// exponential step.
func (r *retryingProvider) computeDelay(err error, b backoff.BackOff) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	delay := b.NextBackOff()
	if delay == backoff.Stop || delay <= 0 {
		return maxBackoff
	}
	return delay
}
