package odds

import "github.com/shopspring/decimal"

// MarketKind is the normalized market a quote belongs to.
type MarketKind string

const (
	MarketMoneyline MarketKind = "MONEYLINE"
	MarketSpread    MarketKind = "SPREAD"
	MarketTotal     MarketKind = "TOTAL"
)

// Upstream market keys.
const (
	MarketKeyH2H     = "h2h"
	MarketKeySpreads = "spreads"
	MarketKeyTotals  = "totals"
)

// FeaturedMarketKeys lists the upstream markets requested in a single call.
var FeaturedMarketKeys = []string{MarketKeyH2H, MarketKeySpreads, MarketKeyTotals}

// MarketKindFromKey maps an upstream market key. ok is false for markets we do not track.
func MarketKindFromKey(key string) (MarketKind, bool) {
	switch key {
	case MarketKeyH2H:
		return MarketMoneyline, true
	case MarketKeySpreads:
		return MarketSpread, true
	case MarketKeyTotals:
		return MarketTotal, true
	default:
		return "", false
	}
}

// HasLine reports whether outcomes of this market carry a point value.
func (k MarketKind) HasLine() bool {
	return k == MarketSpread || k == MarketTotal
}

// DisplayName is the human-facing market name.
func (k MarketKind) DisplayName() string {
	switch k {
	case MarketMoneyline:
		return "Moneyline (Winner)"
	case MarketSpread:
		return "Point Spread"
	case MarketTotal:
		return "Game Total O/U"
	default:
		return string(k)
	}
}

// Rank orders markets for display.
func (k MarketKind) Rank() int {
	switch k {
	case MarketMoneyline:
		return 0
	case MarketSpread:
		return 1
	case MarketTotal:
		return 2
	default:
		return 3
	}
}

// PriceQuote is one bookmaker's decimal price for one outcome.
type PriceQuote struct {
	Bookmaker    string           `json:"bookmaker"`
	BookmakerKey string           `json:"bookmakerKey"`
	Market       MarketKind       `json:"market"`
	Outcome      string           `json:"outcome"`
	Point        *decimal.Decimal `json:"point,omitempty"`
	// Label identifies the outcome for comparison; it includes the point for spreads and totals.
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

// Game is a normalized scheduled match and the quotes posted for it.
type Game struct {
	ID           string       `json:"id"`
	HomeTeam     string       `json:"homeTeam"`
	AwayTeam     string       `json:"awayTeam"`
	CommenceTime string       `json:"commenceTime,omitempty"`
	Quotes       []PriceQuote `json:"quotes"`
}

// Matchup renders "Away @ Home".
func (g Game) Matchup() string {
	return g.AwayTeam + " @ " + g.HomeTeam
}

// BestPrice is the winning quote for a (game, market, label) triple.
type BestPrice struct {
	Market       MarketKind       `json:"market"`
	Outcome      string           `json:"outcome"`
	Point        *decimal.Decimal `json:"point,omitempty"`
	Label        string           `json:"label"`
	Price        decimal.Decimal  `json:"price"`
	Bookmaker    string           `json:"bookmaker"`
	BookmakerKey string           `json:"bookmakerKey"`
	Offers       int              `json:"offers"`
}

// GameBest pairs a game with its best prices.
type GameBest struct {
	Game Game        `json:"game"`
	Best []BestPrice `json:"best"`
}

// HasMarketData reports whether any best price was found for the game.
func (g GameBest) HasMarketData() bool {
	return len(g.Best) > 0
}
