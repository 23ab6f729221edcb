package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fixtureEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BESTLINES_PROVIDER", "fixture")
	t.Setenv("BESTLINES_CACHE_DIR", dir)
	t.Setenv("BESTLINES_RETRY_ATTEMPTS", "1")
	t.Setenv("BESTLINES_METRICS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func TestRunFixtureTextReport(t *testing.T) {
	dir := fixtureEnv(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--sports", "nfl", "nba"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	out := stdout.String()
	for _, e := range []string{"STARTING SCAN FOR LEAGUE: NFL", "STARTING SCAN FOR LEAGUE: NBA", "GAME: Baltimore Ravens @ Kansas City Chiefs", "--- Market: Point Spread ---"} {
		if !strings.Contains(out, e) {
			t.Fatalf("expected %q in output\n%s", e, out)
		}
	}
	for _, key := range []string{"americanfootball_nfl", "basketball_nba"} {
		if _, err := os.Stat(filepath.Join(dir, key+"_cache.json")); err != nil {
			t.Fatalf("expected cache file for %s: %v", key, err)
		}
	}
}

func TestRunJSONOutputAndCacheReuse(t *testing.T) {
	fixtureEnv(t)
	var first, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-s", "epl", "-o", "json"}, &first, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}

	var second bytes.Buffer
	if code := run(context.Background(), []string{"--sports=epl", "--output=json"}, &second, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}

	var decoded struct {
		Leagues []struct {
			Alias  string `json:"alias"`
			Source string `json:"source"`
		} `json:"leagues"`
	}
	if err := json.Unmarshal(second.Bytes(), &decoded); err != nil {
		t.Fatalf("expected json output, got %v\n%s", err, second.String())
	}
	if len(decoded.Leagues) != 1 || decoded.Leagues[0].Source != "cache" {
		t.Fatalf("expected second run served from cache, got %+v", decoded.Leagues)
	}

	var forced bytes.Buffer
	if code := run(context.Background(), []string{"--sports", "epl", "--newcall", "--output", "json"}, &forced, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(forced.String(), `"source": "fetched"`) {
		t.Fatalf("expected forced run to fetch, got %s", forced.String())
	}
}

func TestRunUnknownAliasExitsWithConfigError(t *testing.T) {
	dir := fixtureEnv(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--sports", "nfl", "xfl"}, &stdout, &stderr)
	if code != exitConfigError {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), `"xfl" is not a supported league`) {
		t.Fatalf("expected alias named in error, got %s", stderr.String())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected no cache activity, found %d entries", len(entries))
	}
}

func TestRunMissingKeyFile(t *testing.T) {
	fixtureEnv(t)
	t.Setenv("BESTLINES_PROVIDER", "oddsapi")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--sports", "nfl", "--key-file", filepath.Join(t.TempDir(), "nope.txt")}, &stdout, &stderr)
	if code != exitConfigError {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Fatal Error") || !strings.Contains(stderr.String(), "not found") {
		t.Fatalf("expected fatal key error, got %s", stderr.String())
	}
}

func TestRunFlagErrors(t *testing.T) {
	fixtureEnv(t)
	cases := map[string][]string{
		"no_leagues":   {},
		"only_commas":  {"--sports", ","},
		"bad_flag":     {"--bogus"},
		"bad_output":   {"--sports", "nfl", "--output", "xml"},
		"bad_provider": {"--sports", "nfl", "--provider", "pigeon"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(context.Background(), args, &stdout, &stderr); code != exitConfigError {
				t.Fatalf("expected exit 1, got %d", code)
			}
		})
	}
}

func TestRunHelpAndListLeagues(t *testing.T) {
	fixtureEnv(t)
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"--help"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("expected help to exit 0, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Usage: bestlines") {
		t.Fatalf("expected usage, got %s", stderr.String())
	}

	stdout.Reset()
	if code := run(context.Background(), []string{"--list-leagues"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "ncaab") || !strings.Contains(stdout.String(), "soccer_epl") {
		t.Fatalf("expected league listing, got %s", stdout.String())
	}
}

func TestRunIgnoresBlankAliases(t *testing.T) {
	fixtureEnv(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--sports", "nfl,", "--sports", " ,nba"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	if strings.Contains(stderr.String(), "not a supported league") {
		t.Fatalf("blank alias reached the scanner: %s", stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "STARTING SCAN FOR LEAGUE: NFL") || !strings.Contains(out, "STARTING SCAN FOR LEAGUE: NBA") {
		t.Fatalf("expected both leagues scanned, got %s", out)
	}
}

func TestCleanAliases(t *testing.T) {
	got := cleanAliases([]string{"nfl", "", " ", " nba "})
	if len(got) != 2 || got[0] != "nfl" || got[1] != "nba" {
		t.Fatalf("unexpected aliases %q", got)
	}
}
