// Package normalize turns a raw odds payload into domain games with comparable quotes.
package normalize

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
)

var minPrice = decimal.NewFromInt(1)

// Result is the normalized form of a payload.
type Result struct {
	Games []odds.Game
	// Warnings lists quotes that were dropped, in payload order.
	Warnings []*MalformedQuoteError
	// SkippedMarkets counts bookmaker markets with keys we do not track.
	SkippedMarkets int
}

// Normalize produces one Game per event in payload order and one PriceQuote per valid outcome.
// Bad outcomes are reported in Warnings and never abort the rest of the payload.
func Normalize(payload odds.Payload) Result {
	res := Result{Games: make([]odds.Game, 0, len(payload))}
	for _, ev := range payload {
		game := odds.Game{
			ID:           ev.ID,
			HomeTeam:     ev.HomeTeam,
			AwayTeam:     ev.AwayTeam,
			CommenceTime: ev.CommenceTime,
			Quotes:       []odds.PriceQuote{},
		}
		for _, bk := range ev.Bookmakers {
			name := bk.Title
			if name == "" {
				name = bk.Key
			}
			if bk.Invalid != "" {
				res.Warnings = append(res.Warnings, &MalformedQuoteError{
					GameID:    ev.ID,
					Bookmaker: name,
					Reason:    "malformed bookmaker entry: " + bk.Invalid,
				})
				continue
			}
			for _, m := range bk.Markets {
				kind, ok := odds.MarketKindFromKey(m.Key)
				if !ok {
					res.SkippedMarkets++
					continue
				}
				for _, o := range m.Outcomes {
					quote, reason := buildQuote(kind, o)
					if reason != "" {
						res.Warnings = append(res.Warnings, &MalformedQuoteError{
							GameID:    ev.ID,
							Bookmaker: name,
							Market:    m.Key,
							Outcome:   o.Name,
							Reason:    reason,
						})
						continue
					}
					quote.Bookmaker = name
					quote.BookmakerKey = bk.Key
					game.Quotes = append(game.Quotes, quote)
				}
			}
		}
		res.Games = append(res.Games, game)
	}
	return res
}

// buildQuote validates one outcome. A non-empty reason means the outcome must be dropped.
func buildQuote(kind odds.MarketKind, o odds.Outcome) (odds.PriceQuote, string) {
	if o.Name == "" {
		return odds.PriceQuote{}, "missing outcome name"
	}

	price, reason := parseNumber(o.Price, "price")
	if reason != "" {
		return odds.PriceQuote{}, reason
	}
	if price.LessThan(minPrice) {
		return odds.PriceQuote{}, "price " + price.String() + " below 1.0"
	}

	quote := odds.PriceQuote{
		Market:  kind,
		Outcome: o.Name,
		Label:   o.Name,
		Price:   price,
	}
	if kind.HasLine() {
		point, reason := parseNumber(o.Point, "point")
		if reason != "" {
			return odds.PriceQuote{}, reason
		}
		quote.Point = &point
		quote.Label = Label(kind, o.Name, point)
	}
	return quote, ""
}

// Label is the comparison key for an outcome: the name, plus the point for spreads and totals.
// Spread points carry an explicit sign ("Chiefs -3.5", "Ravens +3.5"); totals do not ("Over 47.5").
func Label(kind odds.MarketKind, name string, point decimal.Decimal) string {
	switch kind {
	case odds.MarketSpread:
		if point.IsPositive() {
			return name + " +" + point.String()
		}
		return name + " " + point.String()
	case odds.MarketTotal:
		return name + " " + point.String()
	default:
		return name
	}
}

// parseNumber accepts JSON numbers and numeric strings.
func parseNumber(raw json.RawMessage, field string) (decimal.Decimal, string) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return decimal.Decimal{}, "missing " + field
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(trimmed); err != nil {
		return decimal.Decimal{}, "non-numeric " + field + " " + string(trimmed)
	}
	return d, ""
}
