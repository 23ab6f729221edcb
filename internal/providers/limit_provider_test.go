package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
)

type countingProvider struct {
	calls int
}

func (c *countingProvider) FetchOdds(ctx context.Context, sportKey string) (odds.Payload, error) {
	c.calls++
	return odds.Payload{}, nil
}

func TestRateLimitedProviderFirstCallImmediateThenSpaced(t *testing.T) {
	inner := &countingProvider{}
	rl := NewRateLimitedProvider(inner, 20*time.Millisecond, nil)

	start := time.Now()
	if _, err := rl.FetchOdds(context.Background(), "basketball_nba"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if time.Since(start) >= 20*time.Millisecond {
		t.Fatalf("expected first call without waiting")
	}

	if _, err := rl.FetchOdds(context.Background(), "americanfootball_nfl"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected second call to wait for interval, elapsed %s", elapsed)
	}
	if inner.calls != 2 {
		t.Fatalf("expected inner provider called twice, got %d", inner.calls)
	}
}

func TestRateLimitedProviderRespectsCanceledContext(t *testing.T) {
	inner := &countingProvider{}
	rl := NewRateLimitedProvider(inner, time.Minute, nil)
	_, _ = rl.FetchOdds(context.Background(), "basketball_nba")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.FetchOdds(ctx, "basketball_nba"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected inner provider not called on canceled context")
	}
}

func TestRateLimitedProviderHandlesNilInner(t *testing.T) {
	var inner OddsProvider
	rl := NewRateLimitedProvider(inner, time.Millisecond, nil)

	_, err := rl.FetchOdds(context.Background(), "basketball_nba")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedProviderDisabledReturnsInner(t *testing.T) {
	inner := &countingProvider{}
	if got := NewRateLimitedProvider(inner, 0, nil); got != OddsProvider(inner) {
		t.Fatalf("expected inner provider when spacing disabled")
	}
}

func TestOddsProviderFunc(t *testing.T) {
	var seen string
	p := OddsProviderFunc(func(ctx context.Context, sportKey string) (odds.Payload, error) {
		seen = sportKey
		return nil, nil
	})
	_, _ = p.FetchOdds(context.Background(), "soccer_epl")
	if seen != "soccer_epl" {
		t.Fatalf("expected sport key passed through, got %q", seen)
	}
}
