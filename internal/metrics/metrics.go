package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type leagueStats struct {
	cache           map[CacheOutcome]int
	writeFailures   int
	droppedQuotes   int
	scans           int
	scanErrors      int
	lastScanLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls and scans.
// When telemetry is enabled the same events are forwarded to OpenTelemetry instruments.
type Recorder struct {
	mu      sync.Mutex
	stats   map[string]*providerStats
	leagues map[string]*leagueStats
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:   make(map[string]*providerStats),
		leagues: make(map[string]*leagueStats),
		otel:    otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordCacheLookup counts how a league's snapshot lookup was resolved.
func (r *Recorder) RecordCacheLookup(league string, outcome CacheOutcome) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ensureLeague(league).cache[outcome]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(league, outcome)
	}
}

// RecordCacheWriteFailure counts snapshot writes that could not complete.
func (r *Recorder) RecordCacheWriteFailure(league string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ensureLeague(league).writeFailures++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheWriteFailure(league)
	}
}

// RecordDroppedQuotes counts malformed quotes dropped during normalization.
func (r *Recorder) RecordDroppedQuotes(league string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.mu.Lock()
	r.ensureLeague(league).droppedQuotes += n
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordDroppedQuotes(league, n)
	}
}

// RecordLeagueScan tracks one league pass through the scan pipeline.
func (r *Recorder) RecordLeagueScan(league string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureLeague(league)
	stats.scans++
	stats.lastScanLatency = duration
	if err != nil {
		stats.scanErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordLeagueScan(league, duration, err)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// LeagueSnapshot is a copy of the per-league scan counters.
type LeagueSnapshot struct {
	Cache         map[CacheOutcome]int
	WriteFailures int
	DroppedQuotes int
	Scans         int
	ScanErrors    int
	LastScan      time.Duration
}

// League returns a copy of the counters recorded for league.
func (r *Recorder) League(league string) LeagueSnapshot {
	out := LeagueSnapshot{Cache: map[CacheOutcome]int{}}
	if r == nil {
		return out
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.leagues[league]
	if !ok {
		return out
	}
	for k, v := range stats.cache {
		out.Cache[k] = v
	}
	out.WriteFailures = stats.writeFailures
	out.DroppedQuotes = stats.droppedQuotes
	out.Scans = stats.scans
	out.ScanErrors = stats.scanErrors
	out.LastScan = stats.lastScanLatency
	return out
}

// callers hold r.mu
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

// callers hold r.mu
func (r *Recorder) ensureLeague(league string) *leagueStats {
	stats, ok := r.leagues[league]
	if !ok {
		stats = &leagueStats{cache: make(map[CacheOutcome]int)}
		r.leagues[league] = stats
	}
	return stats
}
