package oddsapi

import "time"

const (
	providerName       = "oddsapi"
	defaultBaseURL     = "https://api.the-odds-api.com/v4"
	defaultRegion      = "us"
	defaultHTTPTimeout = 15 * time.Second
	oddsFormatDecimal  = "decimal"
	errorBodyLimit     = 512

	headerRequestsRemaining = "x-requests-remaining"
	headerRequestsUsed      = "x-requests-used"
	headerRetryAfter        = "Retry-After"
)
