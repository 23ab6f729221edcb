package providers

import (
	"context"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
)

// OddsProvider fetches the raw odds payload for one upstream sport key
// (decimal prices, featured markets, a single region).
type OddsProvider interface {
	FetchOdds(ctx context.Context, sportKey string) (odds.Payload, error)
}

// OddsProviderFunc adapts a function to OddsProvider.
type OddsProviderFunc func(ctx context.Context, sportKey string) (odds.Payload, error)

// FetchOdds calls f.
func (f OddsProviderFunc) FetchOdds(ctx context.Context, sportKey string) (odds.Payload, error) {
	return f(ctx, sportKey)
}
