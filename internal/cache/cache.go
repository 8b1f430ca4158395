package cache

import (
	"time"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-license-verify/constant"
	"github.com/dgraph-io/ristretto/v2"
)

// Manager caches signature verdicts keyed by a digest of the signed bytes and
// the signature. A verdict is a pure function of its key, so entries never go
// stale; the TTL only bounds memory.
type Manager struct {
	cache  *ristretto.Cache[string, bool]
	ttl    time.Duration
	logger log.Logger
}

// New creates a new cache manager. A non-positive ttl falls back to constant.CacheTTL.
func New(ttl time.Duration, logger log.Logger) (*Manager, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, bool]{
		NumCounters:        constant.CacheNumCounters,
		MaxCost:            constant.CacheMaxCost,
		BufferItems:        constant.CacheBufferItems,
		// Every entry costs 1, so MaxCost bounds the number of verdicts.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	if ttl <= 0 {
		ttl = constant.CacheTTL
	}

	return &Manager{
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Get returns the cached verdict for key.
func (m *Manager) Get(key string) (verdict bool, found bool) {
	verdict, found = m.cache.Get(key)
	if found {
		m.logger.Debugf("Signature verdict cached for %s [valid: %t]", shortKey(key), verdict)
	}

	return verdict, found
}

// Store caches a verdict. Writes are buffered; call Wait to make them visible.
func (m *Manager) Store(key string, verdict bool) {
	m.cache.SetWithTTL(key, verdict, 1, m.ttl)

	m.logger.Debugf("Stored signature verdict for %s", shortKey(key))
}

// Wait blocks until buffered writes are applied.
func (m *Manager) Wait() { m.cache.Wait() }

// Close stops the cache goroutines.
func (m *Manager) Close() { m.cache.Close() }

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}

	return key
}
