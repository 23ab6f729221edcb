package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/preston-bernstein/bestlines/internal/app"
	"github.com/preston-bernstein/bestlines/internal/config"
	"github.com/preston-bernstein/bestlines/internal/logging"
	"github.com/preston-bernstein/bestlines/internal/report"
	"github.com/preston-bernstein/bestlines/internal/timeutil"
)

const appVersion = "dev"

const (
	exitOK          = 0
	exitConfigError = 1
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	sports   []string
	newCall  bool
	output   string
	cacheDir string
	keyFile  string
	provider string
	list     bool
}

func parseFlags(args []string, stderr io.Writer) (options, *pflag.FlagSet, error) {
	var opts options
	fs := pflag.NewFlagSet("bestlines", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringSliceVarP(&opts.sports, "sports", "s", nil, "league aliases to scan (e.g. nfl nba, or nfl,nba)")
	fs.BoolVar(&opts.newCall, "newcall", false, "ignore the local cache and fetch fresh odds")
	fs.StringVarP(&opts.output, "output", "o", string(report.FormatText), "output format: text or json")
	fs.StringVar(&opts.cacheDir, "cache-dir", "", "directory holding the per-league cache files")
	fs.StringVar(&opts.keyFile, "key-file", "", "file containing the odds API key")
	fs.StringVar(&opts.provider, "provider", "", "odds source: oddsapi or fixture")
	fs.BoolVar(&opts.list, "list-leagues", false, "print the supported league aliases and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: bestlines --sports ALIAS [ALIAS...] [flags]\n\nFind the best available price per outcome across bookmakers.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, fs, err
	}
	// "--sports nfl nba" leaves nba as a positional argument.
	opts.sports = cleanAliases(append(opts.sports, fs.Args()...))
	return opts, fs, nil
}

// cleanAliases drops blank entries such as the one left by "--sports nfl,".
func cleanAliases(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, alias := range raw {
		if alias = strings.TrimSpace(alias); alias != "" {
			out = append(out, alias)
		}
	}
	return out
}

// applyFlags lets explicit flags override env-derived configuration.
func applyFlags(cfg config.Config, opts options, fs *pflag.FlagSet) config.Config {
	if fs.Changed("cache-dir") {
		cfg.CacheDir = opts.cacheDir
	}
	if fs.Changed("key-file") {
		cfg.KeyFile = opts.keyFile
	}
	if fs.Changed("provider") {
		cfg.Provider = opts.provider
	}
	return cfg
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitConfigError
	}

	format, err := report.ParseFormat(opts.output)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitConfigError
	}

	cfg := applyFlags(config.Load(), opts, fs)
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "bestlines",
		Version: appVersion,
		Output:  stderr,
	})

	if opts.list {
		table, err := config.LoadLeagueTable(cfg.LeaguesFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitConfigError
		}
		for _, alias := range table.Aliases() {
			l, _ := table.Resolve(alias)
			fmt.Fprintf(stdout, "%-6s %s %s\n", l.Alias, l.SportKey, l.Emoji)
		}
		return exitOK
	}

	if len(opts.sports) == 0 {
		fmt.Fprintln(stderr, "Error: no leagues given; pass --sports ALIAS [ALIAS...]")
		fs.Usage()
		return exitConfigError
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Fatal Error: %v\n", err)
		return exitConfigError
	}
	defer a.Close(context.WithoutCancel(ctx))

	rep, err := a.Scan(ctx, opts.sports, opts.newCall)
	if err != nil {
		var unknown *config.UnknownLeagueError
		if errors.As(err, &unknown) {
			fmt.Fprintf(stderr, "Error: %q is not a supported league (supported: %s)\n", unknown.Alias, strings.Join(unknown.Supported, ", "))
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return exitConfigError
	}

	if err := report.Render(stdout, format, rep, report.Options{Location: timeutil.LoadLocation(cfg.Timezone)}); err != nil {
		logging.Error(logger, "failed to write report", err)
	}
	return exitOK
}
