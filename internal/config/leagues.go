package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// League maps a short alias to the upstream sport key.
type League struct {
	Alias    string `toml:"alias"`
	SportKey string `toml:"sport_key"`
	Title    string `toml:"title"`
	Emoji    string `toml:"emoji"`
}

// UnknownLeagueError reports an alias missing from the league table.
type UnknownLeagueError struct {
	Alias     string
	Supported []string
}

func (e *UnknownLeagueError) Error() string {
	return fmt.Sprintf("unknown league alias %q (supported: %s)", e.Alias, strings.Join(e.Supported, ", "))
}

// DefaultLeagues is the built-in alias table.
func DefaultLeagues() []League {
	return []League{
		{Alias: "nfl", SportKey: "americanfootball_nfl", Title: "NFL", Emoji: "🏈"},
		{Alias: "nba", SportKey: "basketball_nba", Title: "NBA", Emoji: "🏀"},
		{Alias: "mlb", SportKey: "baseball_mlb", Title: "MLB", Emoji: "⚾️"},
		{Alias: "nhl", SportKey: "icehockey_nhl", Title: "NHL", Emoji: "🏒"},
		{Alias: "ncaaf", SportKey: "americanfootball_ncaaf", Title: "NCAAF", Emoji: "📣 🏈"},
		{Alias: "ncaab", SportKey: "basketball_ncaab", Title: "NCAAB", Emoji: "📣 🏀"},
		{Alias: "epl", SportKey: "soccer_epl", Title: "EPL", Emoji: "⚽️"},
	}
}

// LeagueTable is an immutable alias → league lookup built once at startup.
type LeagueTable struct {
	byAlias map[string]League
	order   []string
}

// NewLeagueTable builds a table; later entries override earlier ones with the same alias.
func NewLeagueTable(leagues []League) (LeagueTable, error) {
	t := LeagueTable{byAlias: make(map[string]League, len(leagues))}
	for _, l := range leagues {
		alias := normalizeAlias(l.Alias)
		if alias == "" {
			return LeagueTable{}, fmt.Errorf("league entry missing alias (sport_key=%q)", l.SportKey)
		}
		if strings.TrimSpace(l.SportKey) == "" {
			return LeagueTable{}, fmt.Errorf("league %q missing sport_key", alias)
		}
		l.Alias = alias
		l.SportKey = strings.TrimSpace(l.SportKey)
		if l.Title == "" {
			l.Title = strings.ToUpper(alias)
		}
		if _, exists := t.byAlias[alias]; !exists {
			t.order = append(t.order, alias)
		}
		t.byAlias[alias] = l
	}
	return t, nil
}

// LoadLeagueTable returns the default table, extended or overridden by the TOML file at path when set.
//
//	[[league]]
//	alias = "wnba"
//	sport_key = "basketball_wnba"
//	title = "WNBA"
func LoadLeagueTable(path string) (LeagueTable, error) {
	leagues := DefaultLeagues()
	if path != "" {
		var file struct {
			League []League `toml:"league"`
		}
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return LeagueTable{}, fmt.Errorf("read leagues file %s: %w", path, err)
		}
		leagues = append(leagues, file.League...)
	}
	return NewLeagueTable(leagues)
}

// Resolve looks up a league by alias, case-insensitively.
func (t LeagueTable) Resolve(alias string) (League, error) {
	l, ok := t.byAlias[normalizeAlias(alias)]
	if !ok {
		return League{}, &UnknownLeagueError{Alias: alias, Supported: t.Aliases()}
	}
	return l, nil
}

// Aliases returns the known aliases in table order.
func (t LeagueTable) Aliases() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// SortedAliases returns the known aliases alphabetically.
func (t LeagueTable) SortedAliases() []string {
	out := t.Aliases()
	sort.Strings(out)
	return out
}

// Len returns the number of leagues.
func (t LeagueTable) Len() int {
	return len(t.order)
}

func normalizeAlias(alias string) string {
	return strings.ToLower(strings.TrimSpace(alias))
}
