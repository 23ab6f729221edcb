package selector

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
	"github.com/preston-bernstein/bestlines/internal/normalize"
	"github.com/preston-bernstein/bestlines/internal/testutil"
)

func quote(book string, market odds.MarketKind, label, price string) odds.PriceQuote {
	return odds.PriceQuote{
		Bookmaker:    book,
		BookmakerKey: book,
		Market:       market,
		Outcome:      label,
		Label:        label,
		Price:        decimal.RequireFromString(price),
	}
}

func TestSelectBestPicksHighestPrice(t *testing.T) {
	game := odds.Game{ID: "g1", HomeTeam: "Home", AwayTeam: "Away", Quotes: []odds.PriceQuote{
		quote("A", odds.MarketMoneyline, "Team X", "1.95"),
		quote("B", odds.MarketMoneyline, "Team X", "2.10"),
	}}

	got := SelectBest([]odds.Game{game})
	if len(got) != 1 || len(got[0].Best) != 1 {
		t.Fatalf("expected a single best price, got %+v", got)
	}
	best := got[0].Best[0]
	if best.Bookmaker != "B" || !best.Price.Equal(decimal.RequireFromString("2.10")) || best.Offers != 2 {
		t.Fatalf("unexpected best %+v", best)
	}
}

func TestSelectBestKeepsDifferentLinesSeparate(t *testing.T) {
	game := odds.Game{ID: "g1", Quotes: []odds.PriceQuote{
		quote("A", odds.MarketSpread, "Team X -3.5", "1.91"),
		quote("B", odds.MarketSpread, "Team X -4.0", "2.05"),
	}}

	best := SelectBest([]odds.Game{game})[0].Best
	if len(best) != 2 {
		t.Fatalf("expected distinct labels to stay separate, got %+v", best)
	}
	if best[0].Label != "Team X -3.5" || best[0].Bookmaker != "A" {
		t.Fatalf("unexpected first best %+v", best[0])
	}
	if best[1].Label != "Team X -4.0" || best[1].Bookmaker != "B" {
		t.Fatalf("unexpected second best %+v", best[1])
	}
}

func TestSelectBestTieGoesToFirstSeen(t *testing.T) {
	game := odds.Game{ID: "g1", Quotes: []odds.PriceQuote{
		quote("A", odds.MarketTotal, "Over 47.5", "1.91"),
		quote("B", odds.MarketTotal, "Over 47.5", "1.910"),
		quote("C", odds.MarketTotal, "Over 47.5", "1.87"),
	}}

	best := SelectBest([]odds.Game{game})[0].Best
	if len(best) != 1 || best[0].Bookmaker != "A" || best[0].Offers != 3 {
		t.Fatalf("expected first bookmaker to keep a tied price, got %+v", best)
	}
}

func TestSelectBestOrdersByMarketThenFirstAppearance(t *testing.T) {
	game := odds.Game{ID: "g1", Quotes: []odds.PriceQuote{
		quote("A", odds.MarketTotal, "Over 47.5", "1.91"),
		quote("A", odds.MarketMoneyline, "Away", "2.30"),
		quote("A", odds.MarketSpread, "Home -3.5", "1.91"),
		quote("A", odds.MarketMoneyline, "Home", "1.65"),
	}}

	best := SelectBest([]odds.Game{game})[0].Best
	want := []string{"Away", "Home", "Home -3.5", "Over 47.5"}
	if len(best) != len(want) {
		t.Fatalf("expected %d best prices, got %d", len(want), len(best))
	}
	for i, label := range want {
		if best[i].Label != label {
			t.Fatalf("position %d: expected %s, got %s", i, label, best[i].Label)
		}
	}
}

func TestSelectBestGameWithoutQuotes(t *testing.T) {
	got := SelectBest([]odds.Game{{ID: "empty"}, {ID: "also-empty", Quotes: []odds.PriceQuote{}}})
	if len(got) != 2 {
		t.Fatalf("expected every game represented, got %d", len(got))
	}
	for _, gb := range got {
		if gb.HasMarketData() {
			t.Fatalf("expected no market data for %s", gb.Game.ID)
		}
	}
}

func TestSelectBestInvariantAgainstNormalizedPayload(t *testing.T) {
	games := normalize.Normalize(testutil.SamplePayload("americanfootball_nfl")).Games
	result := SelectBest(games)

	for _, gb := range result {
		for _, bp := range gb.Best {
			for _, q := range gb.Game.Quotes {
				if q.Market == bp.Market && q.Label == bp.Label && q.Price.GreaterThan(bp.Price) {
					t.Fatalf("best %s %s at %s beaten by %s at %s", bp.Market, bp.Label, bp.Price, q.Bookmaker, q.Price)
				}
			}
		}
	}

	best := result[0].Best
	if len(best) != 6 {
		t.Fatalf("expected 6 best prices, got %d", len(best))
	}
	byLabel := map[string]odds.BestPrice{}
	for _, bp := range best {
		byLabel[bp.Label] = bp
	}
	if bp := byLabel["Baltimore Ravens"]; bp.Bookmaker != "FanDuel" {
		t.Fatalf("expected FanDuel for Ravens moneyline, got %+v", bp)
	}
	if bp := byLabel["Kansas City Chiefs -3.5"]; bp.Bookmaker != "DraftKings" {
		t.Fatalf("expected DraftKings for Chiefs -3.5, got %+v", bp)
	}
	if bp := byLabel["Over 47.5"]; bp.Bookmaker != "DraftKings" || bp.Offers != 2 {
		t.Fatalf("unexpected Over 47.5 best %+v", bp)
	}
}
