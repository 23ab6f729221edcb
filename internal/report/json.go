package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
	"github.com/preston-bernstein/bestlines/internal/scan"
)

type jsonReport struct {
	ScanID    string       `json:"scanId"`
	StartedAt time.Time    `json:"startedAt"`
	Leagues   []jsonLeague `json:"leagues"`
}

type jsonLeague struct {
	Alias          string          `json:"alias"`
	SportKey       string          `json:"sportKey"`
	Title          string          `json:"title"`
	Source         string          `json:"source,omitempty"`
	FetchedAt      *time.Time      `json:"fetchedAt,omitempty"`
	Error          string          `json:"error,omitempty"`
	CacheError     string          `json:"cacheError,omitempty"`
	Warnings       []string        `json:"warnings,omitempty"`
	SkippedMarkets int             `json:"skippedMarkets,omitempty"`
	Games          []odds.GameBest `json:"games"`
}

// WriteJSON renders the report as a single indented JSON document.
func WriteJSON(w io.Writer, r scan.Report) error {
	out := jsonReport{
		ScanID:    r.ScanID,
		StartedAt: r.StartedAt,
		Leagues:   make([]jsonLeague, 0, len(r.Leagues)),
	}
	for _, l := range r.Leagues {
		jl := jsonLeague{
			Alias:          l.League.Alias,
			SportKey:       l.League.SportKey,
			Title:          l.League.Title,
			Source:         string(l.Source),
			SkippedMarkets: l.SkippedMarkets,
			Games:          l.Games,
		}
		if jl.Games == nil {
			jl.Games = []odds.GameBest{}
		}
		if !l.FetchedAt.IsZero() {
			at := l.FetchedAt.UTC()
			jl.FetchedAt = &at
		}
		if l.Err != nil {
			jl.Error = l.Err.Error()
		}
		if l.WriteErr != nil {
			jl.CacheError = l.WriteErr.Error()
		}
		for _, warn := range l.Warnings {
			jl.Warnings = append(jl.Warnings, warn.Error())
		}
		out.Leagues = append(out.Leagues, jl)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
