package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
	"github.com/preston-bernstein/bestlines/internal/scan"
	"github.com/preston-bernstein/bestlines/internal/snapshots"
	"github.com/preston-bernstein/bestlines/internal/timeutil"
)

const pricePlaces = 3

var (
	scanRule = strings.Repeat("*", 80)
	gameRule = strings.Repeat("—", 50)
)

// printer keeps the first write error so rendering code can stay linear.
type printer struct {
	w   io.Writer
	loc *time.Location
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// WriteText renders a human-readable report: one section per league, one block per game,
// and the best price per outcome grouped by market.
func WriteText(w io.Writer, r scan.Report, opts Options) error {
	p := &printer{w: w, loc: opts.Location}
	for _, league := range r.Leagues {
		writeLeague(p, league)
	}
	if failed := r.Failed(); failed > 0 {
		p.printf("\n%d of %d leagues failed (scan %s)\n", failed, len(r.Leagues), r.ScanID)
	}
	return p.err
}

func writeLeague(p *printer, l scan.LeagueResult) {
	emoji := l.League.Emoji
	p.printf("\n%s\n", scanRule)
	p.printf("*** %s STARTING SCAN FOR LEAGUE: %s (%s) ***\n", emoji, strings.ToUpper(l.League.Alias), l.League.SportKey)
	p.printf("%s\n", scanRule)

	if l.Err != nil {
		p.printf("!!! Scan failed for %s: %v\n", strings.ToUpper(l.League.Alias), l.Err)
		return
	}

	p.printf("%s\n", sourceLine(l))
	if l.WriteErr != nil {
		p.printf("Warning: results not cached: %v\n", l.WriteErr)
	}

	p.printf("\n======== %s BEST ODDS FOUND FOR %s ========\n", emoji, strings.ToUpper(l.League.SportKey))
	if len(l.Games) == 0 {
		p.printf("\nNo games found for %s.\n", strings.ToUpper(l.League.Alias))
	}
	for _, g := range l.Games {
		writeGame(p, emoji, g)
	}

	if n := len(l.Warnings); n > 0 {
		p.printf("\nSkipped %d malformed quote(s).\n", n)
	}
}

func sourceLine(l scan.LeagueResult) string {
	switch l.Source {
	case snapshots.SourceCache:
		if l.FetchedAt.IsZero() {
			return "Loaded from local cache."
		}
		return "Loaded from local cache (fetched " + l.FetchedAt.UTC().Format(time.RFC3339) + ")."
	default:
		return "Fetched new data from the odds API."
	}
}

func writeGame(p *printer, emoji string, g odds.GameBest) {
	p.printf("\n%s\n", gameRule)
	p.printf("%s GAME: %s\n", emoji, g.Game.Matchup())
	if kickoff := timeutil.FormatKickoff(g.Game.CommenceTime, p.loc); kickoff != "" {
		p.printf("Kickoff: %s\n", kickoff)
	}
	p.printf("%s\n", gameRule)

	if !g.HasMarketData() {
		p.printf("  (no market data)\n")
		return
	}

	var current odds.MarketKind
	for _, bp := range g.Best {
		if bp.Market != current {
			current = bp.Market
			p.printf("\n--- Market: %s ---\n", current.DisplayName())
		}
		p.printf("  -> %s: **%s** @ %s\n", bp.Label, bp.Bookmaker, bp.Price.StringFixed(pricePlaces))
	}
}
