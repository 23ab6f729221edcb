package config

import "time"

const (
	envProvider        = "BESTLINES_PROVIDER"
	envKeyFile         = "BESTLINES_KEY_FILE"
	envCacheDir        = "BESTLINES_CACHE_DIR"
	envLeaguesFile     = "BESTLINES_LEAGUES_FILE"
	envOddsBaseURL     = "BESTLINES_ODDS_BASE_URL"
	envOddsRegion      = "BESTLINES_ODDS_REGION"
	envHTTPTimeout     = "BESTLINES_HTTP_TIMEOUT"
	envRetryAttempts   = "BESTLINES_RETRY_ATTEMPTS"
	envRetryBackoff    = "BESTLINES_RETRY_BACKOFF"
	envMinCallInterval = "BESTLINES_MIN_CALL_INTERVAL"
	envTimezone        = "BESTLINES_TIMEZONE"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envMetricsOn       = "BESTLINES_METRICS_ENABLED"
	envMetricsTextfile = "BESTLINES_METRICS_TEXTFILE"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultProvider     = ProviderOddsAPI
	defaultKeyFile      = "my_key.txt"
	defaultCacheDir     = "."
	defaultOddsBaseURL  = "https://api.the-odds-api.com/v4"
	defaultOddsRegion   = "us"
	defaultHTTPTimeout  = 15 * time.Second
	defaultRetryAttempt = 3
	defaultRetryBackoff = 500 * time.Millisecond
	defaultServiceName  = "bestlines"
	defaultTimezone     = "America/New_York"

	// ProviderOddsAPI talks to the live odds endpoint.
	ProviderOddsAPI = "oddsapi"
	// ProviderFixture serves a built-in payload for offline runs.
	ProviderFixture = "fixture"
)
