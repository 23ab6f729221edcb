package normalize

import "fmt"

// MalformedQuoteError describes an outcome that was dropped during normalization.
type MalformedQuoteError struct {
	GameID    string
	Bookmaker string
	Market    string
	Outcome   string
	Reason    string
}

func (e *MalformedQuoteError) Error() string {
	return fmt.Sprintf("malformed quote (game=%s book=%s market=%s outcome=%q): %s",
		e.GameID, e.Bookmaker, e.Market, e.Outcome, e.Reason)
}
