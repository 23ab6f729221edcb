package testutil

import (
	"encoding/json"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
)

// Outcome builds an outcome whose price is the literal JSON text given (e.g. "2.10", `"abc"`, "null").
func Outcome(name, price string) odds.Outcome {
	return odds.Outcome{Name: name, Price: json.RawMessage(price)}
}

// PointOutcome builds a spread or total outcome with a literal JSON point.
func PointOutcome(name, price, point string) odds.Outcome {
	o := Outcome(name, price)
	o.Point = json.RawMessage(point)
	return o
}

// Market groups outcomes under an upstream market key.
func Market(key string, outcomes ...odds.Outcome) odds.Market {
	return odds.Market{Key: key, Outcomes: outcomes}
}

// Bookmaker builds a bookmaker with the given markets.
func Bookmaker(key, title string, markets ...odds.Market) odds.Bookmaker {
	return odds.Bookmaker{Key: key, Title: title, Markets: markets}
}

// Event builds an event with the given bookmakers.
func Event(id, home, away string, books ...odds.Bookmaker) odds.Event {
	return odds.Event{
		ID:           id,
		HomeTeam:     home,
		AwayTeam:     away,
		CommenceTime: "2024-09-08T17:00:00Z",
		Bookmakers:   books,
	}
}

// SamplePayload returns one Ravens @ Chiefs event quoted by two books across all three markets.
// FanDuel has the better Ravens moneyline (2.40 vs 2.30); DraftKings the better Chiefs -3.5 (1.95).
func SamplePayload(sportKey string) odds.Payload {
	event := Event("evt-1", "Kansas City Chiefs", "Baltimore Ravens",
		Bookmaker("draftkings", "DraftKings",
			Market(odds.MarketKeyH2H,
				Outcome("Kansas City Chiefs", "1.65"),
				Outcome("Baltimore Ravens", "2.30"),
			),
			Market(odds.MarketKeySpreads,
				PointOutcome("Kansas City Chiefs", "1.95", "-3.5"),
				PointOutcome("Baltimore Ravens", "1.87", "3.5"),
			),
			Market(odds.MarketKeyTotals,
				PointOutcome("Over", "1.91", "47.5"),
				PointOutcome("Under", "1.91", "47.5"),
			),
		),
		Bookmaker("fanduel", "FanDuel",
			Market(odds.MarketKeyH2H,
				Outcome("Kansas City Chiefs", "1.62"),
				Outcome("Baltimore Ravens", "2.40"),
			),
			Market(odds.MarketKeySpreads,
				PointOutcome("Kansas City Chiefs", "1.91", "-3.5"),
				PointOutcome("Baltimore Ravens", "1.91", "3.5"),
			),
			Market(odds.MarketKeyTotals,
				PointOutcome("Over", "1.87", "47.5"),
				PointOutcome("Under", "1.95", "47.5"),
			),
		),
	)
	event.SportKey = sportKey
	return odds.Payload{event}
}
