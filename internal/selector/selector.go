package selector

import (
	"sort"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
)

type groupKey struct {
	market odds.MarketKind
	label  string
}

// SelectBest picks, for every game, the highest price per (market, label). When two
// bookmakers post the same price the one seen first in the game's quotes keeps it.
// Results follow input game order; within a game they are ordered by market then by the
// first appearance of each label.
func SelectBest(games []odds.Game) []odds.GameBest {
	out := make([]odds.GameBest, 0, len(games))
	for _, g := range games {
		out = append(out, odds.GameBest{Game: g, Best: bestForGame(g.Quotes)})
	}
	return out
}

func bestForGame(quotes []odds.PriceQuote) []odds.BestPrice {
	best := make([]odds.BestPrice, 0)
	index := make(map[groupKey]int)

	for _, q := range quotes {
		key := groupKey{market: q.Market, label: q.Label}
		i, seen := index[key]
		if !seen {
			index[key] = len(best)
			best = append(best, fromQuote(q, 1))
			continue
		}
		best[i].Offers++
		if q.Price.GreaterThan(best[i].Price) {
			best[i] = fromQuote(q, best[i].Offers)
		}
	}

	sort.SliceStable(best, func(i, j int) bool {
		return best[i].Market.Rank() < best[j].Market.Rank()
	})
	return best
}

func fromQuote(q odds.PriceQuote, offers int) odds.BestPrice {
	return odds.BestPrice{
		Market:       q.Market,
		Outcome:      q.Outcome,
		Point:        q.Point,
		Label:        q.Label,
		Price:        q.Price,
		Bookmaker:    q.Bookmaker,
		BookmakerKey: q.BookmakerKey,
		Offers:       offers,
	}
}
