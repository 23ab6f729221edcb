package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for a scan.
type Config struct {
	Provider    string
	KeyFile     string
	CacheDir    string
	LeaguesFile string
	OddsAPI     OddsAPIConfig
	Retry       RetryConfig
	// MinCallInterval spaces upstream calls; zero disables spacing.
	MinCallInterval time.Duration
	// Timezone is the IANA zone used to show kickoff times.
	Timezone string
	Log      LogConfig
	Metrics  MetricsConfig
}

// OddsAPIConfig controls how the upstream odds endpoint is reached.
type OddsAPIConfig struct {
	BaseURL string
	Region  string
	Timeout time.Duration
}

// RetryConfig controls retries around upstream fetches.
type RetryConfig struct {
	Attempts int
	Backoff  time.Duration
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from a .env file (if present) and environment variables with sensible defaults.
func Load() Config {
	// Missing .env is the common case.
	_ = godotenv.Load()

	return Config{
		Provider:    envOrDefault(envProvider, defaultProvider),
		KeyFile:     envOrDefault(envKeyFile, defaultKeyFile),
		CacheDir:    envOrDefault(envCacheDir, defaultCacheDir),
		LeaguesFile: envOrDefault(envLeaguesFile, ""),
		OddsAPI: OddsAPIConfig{
			BaseURL: envOrDefault(envOddsBaseURL, defaultOddsBaseURL),
			Region:  envOrDefault(envOddsRegion, defaultOddsRegion),
			Timeout: durationEnvOrDefault(envHTTPTimeout, defaultHTTPTimeout),
		},
		Retry: RetryConfig{
			Attempts: intEnvOrDefault(envRetryAttempts, defaultRetryAttempt),
			Backoff:  durationEnvOrDefault(envRetryBackoff, defaultRetryBackoff),
		},
		MinCallInterval: durationEnvOrDefault(envMinCallInterval, 0),
		Timezone:        envOrDefault(envTimezone, defaultTimezone),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, "info"),
			Format: envOrDefault(envLogFormat, "text"),
		},
		Metrics: loadMetrics(),
	}
}
