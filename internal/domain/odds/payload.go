package odds

import (
	"bytes"
	"encoding/json"
)

// Payload is the upstream odds document: one Event per scheduled match, in the
// order the upstream returned them.
type Payload []Event

// Event is a scheduled match with every bookmaker's posted markets.
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title,omitempty"`
	CommenceTime string      `json:"commence_time,omitempty"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is a single sportsbook entry under an event.
type Bookmaker struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	LastUpdate string   `json:"last_update,omitempty"`
	Markets    []Market `json:"markets"`
	// Invalid is the decode failure of an entry that did not have the expected shape.
	// Such an entry keeps its raw bytes so it round-trips through the cache unchanged.
	Invalid string `json:"-"`

	raw json.RawMessage
}

type bookmakerFields Bookmaker

// UnmarshalJSON never fails on a well-formed JSON value: an entry with the wrong shape
// is kept with Invalid set so sibling bookmakers still decode.
func (b *Bookmaker) UnmarshalJSON(data []byte) error {
	var fields bookmakerFields
	if err := json.Unmarshal(data, &fields); err != nil {
		var raw bytes.Buffer
		if cerr := json.Compact(&raw, data); cerr != nil {
			return cerr
		}
		*b = Bookmaker{Invalid: err.Error(), raw: raw.Bytes()}
		b.Key, b.Title = identifyBookmaker(data)
		return nil
	}
	*b = Bookmaker(fields)
	return nil
}

// MarshalJSON writes an invalid entry back exactly as it was received.
func (b Bookmaker) MarshalJSON() ([]byte, error) {
	if b.Invalid != "" && len(b.raw) > 0 {
		return b.raw, nil
	}
	return json.Marshal(bookmakerFields(b))
}

// identifyBookmaker pulls whatever key and title survive from a malformed entry.
func identifyBookmaker(data []byte) (key, title string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", ""
	}
	_ = json.Unmarshal(fields["key"], &key)
	_ = json.Unmarshal(fields["title"], &title)
	return key, title
}

// Market is one market posted by a bookmaker (h2h, spreads, totals, ...).
type Market struct {
	Key        string    `json:"key"`
	LastUpdate string    `json:"last_update,omitempty"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Outcome is a priced selection. Price and Point stay raw so one bad value does
// not fail decoding of the whole payload.
type Outcome struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       json.RawMessage `json:"price,omitempty"`
	Point       json.RawMessage `json:"point,omitempty"`
}

// QuoteCount returns the number of raw outcomes across all bookmakers and markets.
func (p Payload) QuoteCount() int {
	n := 0
	for _, ev := range p {
		for _, bk := range ev.Bookmakers {
			for _, m := range bk.Markets {
				n += len(m.Outcomes)
			}
		}
	}
	return n
}
