package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/preston-bernstein/bestlines/internal/scan"
)

// Format selects an output renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text or json)", raw)
	}
}

// Options tune rendering.
type Options struct {
	// Location is used for kickoff times in text output; nil means UTC.
	Location *time.Location
}

// Render writes r to w in the given format.
func Render(w io.Writer, format Format, r scan.Report, opts Options) error {
	if format == FormatJSON {
		return WriteJSON(w, r)
	}
	return WriteText(w, r, opts)
}
