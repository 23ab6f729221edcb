package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrProvider = "provider"
	AttrLeague   = "league"
	AttrOutcome  = "outcome"
)

// CacheOutcome classifies a snapshot lookup.
type CacheOutcome string

const (
	CacheHit     CacheOutcome = "hit"
	CacheMiss    CacheOutcome = "miss"
	CacheCorrupt CacheOutcome = "corrupt"
	CacheForced  CacheOutcome = "forced"
)
