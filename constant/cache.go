package constant

import "time"

// Cache configuration constants
const (
	// CacheTTL defines the default time-to-live for cached signature verdicts
	CacheTTL = 24 * time.Hour
	// CacheNumCounters is the number of keys to track frequency (100K)
	CacheNumCounters = 1e5
	// CacheMaxCost is the maximum number of cached verdicts
	CacheMaxCost = 1 << 13
	// CacheBufferItems is the number of keys per Get buffer
	CacheBufferItems = 64
)
