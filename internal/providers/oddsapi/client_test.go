package oddsapi

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/bestlines/internal/providers"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(rt roundTripperFunc, logger *slog.Logger) *Client {
	return NewClient(Config{
		BaseURL:    "http://example.com/v4/",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
		Logger:     logger,
	})
}

func jsonResponse(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     header,
	}
}

const samplePayload = `[
	{
		"id": "evt-1",
		"sport_key": "americanfootball_nfl",
		"sport_title": "NFL",
		"commence_time": "2024-09-08T17:00:00Z",
		"home_team": "Kansas City Chiefs",
		"away_team": "Baltimore Ravens",
		"bookmakers": [
			{
				"key": "draftkings",
				"title": "DraftKings",
				"last_update": "2024-09-08T12:00:00Z",
				"markets": [
					{"key": "h2h", "outcomes": [
						{"name": "Kansas City Chiefs", "price": 1.65},
						{"name": "Baltimore Ravens", "price": 2.3}
					]},
					{"key": "spreads", "outcomes": [
						{"name": "Kansas City Chiefs", "price": 1.91, "point": -3.5}
					]}
				]
			}
		]
	}
]`

func TestFetchOddsHitsAPIAndDecodesPayload(t *testing.T) {
	var captured *http.Request
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		header := make(http.Header)
		header.Set(headerRequestsRemaining, "480")
		header.Set(headerRequestsUsed, "20")
		return jsonResponse(http.StatusOK, samplePayload, header), nil
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	client := newTestClient(rt, logger)

	payload, err := client.FetchOdds(context.Background(), "americanfootball_nfl")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if captured.URL.Path != "/v4/sports/americanfootball_nfl/odds" {
		t.Fatalf("unexpected path %s", captured.URL.Path)
	}
	q := captured.URL.Query()
	expect := map[string]string{
		"apiKey":     "secret",
		"regions":    "us",
		"oddsFormat": "decimal",
		"markets":    "h2h,spreads,totals",
	}
	for k, v := range expect {
		if got := q.Get(k); got != v {
			t.Fatalf("expected %s=%s, got %s", k, v, got)
		}
	}

	if len(payload) != 1 || payload[0].ID != "evt-1" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if got := payload.QuoteCount(); got != 3 {
		t.Fatalf("expected 3 quotes, got %d", got)
	}
	if string(payload[0].Bookmakers[0].Markets[1].Outcomes[0].Point) != "-3.5" {
		t.Fatalf("expected raw point preserved, got %s", payload[0].Bookmakers[0].Markets[1].Outcomes[0].Point)
	}
	if !strings.Contains(buf.String(), "requests_remaining=480") {
		t.Fatalf("expected quota header logged, got %s", buf.String())
	}
}

func TestFetchOddsMapsRateLimit(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		header := make(http.Header)
		header.Set(headerRetryAfter, "7")
		header.Set(headerRequestsRemaining, "0")
		return jsonResponse(http.StatusTooManyRequests, "quota exhausted", header), nil
	})

	_, err := newTestClient(rt, nil).FetchOdds(context.Background(), "basketball_nba")
	rlErr, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rlErr.RetryAfter != 7*time.Second || rlErr.Remaining != "0" || rlErr.Provider != providerName {
		t.Fatalf("unexpected rate limit details %+v", rlErr)
	}
	if !providers.IsRetryable(err) {
		t.Fatalf("expected rate limit to be retryable")
	}
}

func TestFetchOddsMapsNon200(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, strings.Repeat("x", 2000), nil), nil
	})

	_, err := newTestClient(rt, nil).FetchOdds(context.Background(), "basketball_nba")
	var statusErr *providers.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected status error, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", statusErr.StatusCode)
	}
	if len(statusErr.Body) != errorBodyLimit {
		t.Fatalf("expected body truncated to %d bytes, got %d", errorBodyLimit, len(statusErr.Body))
	}
	if providers.IsRetryable(err) {
		t.Fatalf("expected 401 to be non-retryable")
	}
}

func TestFetchOddsHandlesDecodeError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "{bad json", nil), nil
	})

	_, err := newTestClient(rt, nil).FetchOdds(context.Background(), "basketball_nba")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !errors.Is(err, providers.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if providers.IsRetryable(err) {
		t.Fatalf("decode errors must not be retried: %v", err)
	}
}

func TestFetchOddsKeepsValidBookmakersBesideMalformedOne(t *testing.T) {
	body := `[{
		"id": "evt-2",
		"sport_key": "basketball_nba",
		"home_team": "Boston Celtics",
		"away_team": "New York Knicks",
		"bookmakers": [
			{"key": "bookA", "title": "Book A", "markets": [
				{"key": "h2h", "outcomes": [
					{"name": "Boston Celtics", "price": 2.1},
					{"name": "New York Knicks", "price": 1.8}
				]}
			]},
			{"key": "bookB", "title": "Book B", "markets": {"key": "h2h"}}
		]
	}]`
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, body, nil), nil
	})

	payload, err := newTestClient(rt, nil).FetchOdds(context.Background(), "basketball_nba")
	if err != nil {
		t.Fatalf("expected tolerant decode, got %v", err)
	}
	if len(payload) != 1 || len(payload[0].Bookmakers) != 2 {
		t.Fatalf("unexpected payload %+v", payload)
	}
	bookA, bookB := payload[0].Bookmakers[0], payload[0].Bookmakers[1]
	if bookA.Invalid != "" || len(bookA.Markets) != 1 || len(bookA.Markets[0].Outcomes) != 2 {
		t.Fatalf("valid bookmaker lost: %+v", bookA)
	}
	if bookB.Invalid == "" || bookB.Key != "bookB" {
		t.Fatalf("expected malformed bookmaker to be flagged, got %+v", bookB)
	}
}

func TestFetchOddsEmptyListIsNotNil(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "[]", nil), nil
	})

	payload, err := newTestClient(rt, nil).FetchOdds(context.Background(), "soccer_epl")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if payload == nil || len(payload) != 0 {
		t.Fatalf("expected empty non-nil payload, got %#v", payload)
	}
}

func TestFetchOddsPropagatesTransportError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("dial failed")
	})

	if _, err := newTestClient(rt, nil).FetchOdds(context.Background(), "basketball_nba"); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestFetchOddsRejectsEmptySportKey(t *testing.T) {
	called := false
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, "[]", nil), nil
	})

	if _, err := newTestClient(rt, nil).FetchOdds(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty sport key")
	}
	if called {
		t.Fatal("expected no request for empty sport key")
	}
}
