package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/bestlines/internal/domain/odds"
	"github.com/preston-bernstein/bestlines/internal/logging"
	"github.com/preston-bernstein/bestlines/internal/providers"
)

// Config controls how the client reaches the odds endpoint.
type Config struct {
	BaseURL    string
	APIKey     string
	Region     string
	Markets    []string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *slog.Logger
}

// Client fetches featured-market odds for a sport in decimal format.
type Client struct {
	baseURL    string
	apiKey     string
	region     string
	markets    []string
	httpClient httpDoer
	logger     *slog.Logger
	now        func() time.Time
}

var _ providers.OddsProvider = (*Client)(nil)

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	markets := cfg.Markets
	if len(markets) == 0 {
		markets = odds.FeaturedMarketKeys
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		region:     resolveRegion(cfg.Region),
		markets:    markets,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

// FetchOdds retrieves the current odds for every upcoming event of sportKey.
func (c *Client) FetchOdds(ctx context.Context, sportKey string) (odds.Payload, error) {
	req, err := c.buildRequest(ctx, sportKey)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	c.logQuota(ctx, sportKey, resp, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		body := readSnippet(resp.Body)
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get(headerRetryAfter), c.now()),
			Remaining:  resp.Header.Get(headerRequestsRemaining),
			Message:    body,
		}
	case resp.StatusCode != http.StatusOK:
		return nil, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       readSnippet(resp.Body),
		}
	}

	var payload odds.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: decode odds for %s: %w: %w", providerName, sportKey, providers.ErrMalformedResponse, err)
	}
	if payload == nil {
		payload = odds.Payload{}
	}
	return payload, nil
}

func (c *Client) buildRequest(ctx context.Context, sportKey string) (*http.Request, error) {
	sportKey = strings.TrimSpace(sportKey)
	if sportKey == "" {
		return nil, fmt.Errorf("%s: sport key is required", providerName)
	}

	endpoint := c.baseURL + "/sports/" + url.PathEscape(sportKey) + "/odds"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("apiKey", c.apiKey)
	q.Set("regions", c.region)
	q.Set("oddsFormat", oddsFormatDecimal)
	q.Set("markets", strings.Join(c.markets, ","))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) logQuota(ctx context.Context, sportKey string, resp *http.Response, elapsed time.Duration) {
	logger := logging.FromContext(ctx, c.logger)
	logging.Info(logger, "odds request complete",
		logging.FieldProvider, providerName,
		logging.FieldSportKey, sportKey,
		logging.FieldStatusCode, resp.StatusCode,
		logging.FieldDurationMS, elapsed.Milliseconds(),
		"requests_remaining", resp.Header.Get(headerRequestsRemaining),
		"requests_used", resp.Header.Get(headerRequestsUsed),
	)
}

func readSnippet(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, errorBodyLimit))
	return strings.TrimSpace(string(body))
}
