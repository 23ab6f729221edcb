package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
)

// Provider returns a static odds board useful for local runs and demos without an API key.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

type matchup struct {
	home, away string
}

var matchups = map[string][]matchup{
	"americanfootball_nfl":   {{"Kansas City Chiefs", "Baltimore Ravens"}, {"Philadelphia Eagles", "Green Bay Packers"}},
	"basketball_nba":         {{"Boston Celtics", "Los Angeles Lakers"}, {"Golden State Warriors", "Miami Heat"}},
	"baseball_mlb":           {{"New York Yankees", "Boston Red Sox"}},
	"icehockey_nhl":          {{"Toronto Maple Leafs", "Montreal Canadiens"}},
	"americanfootball_ncaaf": {{"Georgia Bulldogs", "Alabama Crimson Tide"}},
	"basketball_ncaab":       {{"Duke Blue Devils", "North Carolina Tar Heels"}},
	"soccer_epl":             {{"Arsenal", "Chelsea"}},
}

type book struct {
	key, title     string
	homeML, awayML string
	spread         string
	spreadPrices   [2]string
	total          string
	totalPrices    [2]string
}

var books = []book{
	{key: "draftkings", title: "DraftKings", homeML: "1.65", awayML: "2.30", spread: "3.5", spreadPrices: [2]string{"1.91", "1.91"}, total: "47.5", totalPrices: [2]string{"1.95", "1.87"}},
	{key: "fanduel", title: "FanDuel", homeML: "1.62", awayML: "2.40", spread: "3.5", spreadPrices: [2]string{"1.95", "1.87"}, total: "47.5", totalPrices: [2]string{"1.91", "1.91"}},
	{key: "betmgm", title: "BetMGM", homeML: "1.67", awayML: "2.25", spread: "4.0", spreadPrices: [2]string{"2.05", "1.80"}, total: "48.0", totalPrices: [2]string{"1.87", "1.95"}},
}

// FetchOdds returns a deterministic payload for sportKey. Unknown sports get a single generic matchup.
func (p *Provider) FetchOdds(ctx context.Context, sportKey string) (odds.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	games, ok := matchups[sportKey]
	if !ok {
		games = []matchup{{"Home Team", "Away Team"}}
	}

	start := p.now().UTC().Truncate(time.Hour)
	payload := make(odds.Payload, 0, len(games))
	for i, m := range games {
		commence := start.Add(time.Duration(2*(i+1)) * time.Hour).Format(time.RFC3339)
		event := odds.Event{
			ID:           fmt.Sprintf("fixture-%s-%d", sportKey, i+1),
			SportKey:     sportKey,
			CommenceTime: commence,
			HomeTeam:     m.home,
			AwayTeam:     m.away,
		}
		for _, b := range books {
			event.Bookmakers = append(event.Bookmakers, b.bookmaker(m, commence))
		}
		payload = append(payload, event)
	}
	return payload, nil
}

func (b book) bookmaker(m matchup, updated string) odds.Bookmaker {
	return odds.Bookmaker{
		Key:        b.key,
		Title:      b.title,
		LastUpdate: updated,
		Markets: []odds.Market{
			{Key: odds.MarketKeyH2H, Outcomes: []odds.Outcome{
				{Name: m.home, Price: raw(b.homeML)},
				{Name: m.away, Price: raw(b.awayML)},
			}},
			{Key: odds.MarketKeySpreads, Outcomes: []odds.Outcome{
				{Name: m.home, Price: raw(b.spreadPrices[0]), Point: raw("-" + b.spread)},
				{Name: m.away, Price: raw(b.spreadPrices[1]), Point: raw(b.spread)},
			}},
			{Key: odds.MarketKeyTotals, Outcomes: []odds.Outcome{
				{Name: "Over", Price: raw(b.totalPrices[0]), Point: raw(b.total)},
				{Name: "Under", Price: raw(b.totalPrices[1]), Point: raw(b.total)},
			}},
		},
	}
}

func raw(v string) json.RawMessage {
	return json.RawMessage(v)
}
