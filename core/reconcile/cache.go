package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedResult holds a finished reconciliation for fast repeated lookups.
type cachedResult struct {
	result *Result
	built  time.Time
	ttl    time.Duration
}

// isExpired returns true if this entry has expired based on its TTL.
func (c *cachedResult) isExpired() bool {
	if c.ttl == 0 {
		return true // No caching
	}
	return time.Since(c.built) > c.ttl
}

// cacheStore holds all reconcile results keyed by job cache key.
type cacheStore struct {
	mu     sync.RWMutex
	caches map[string]*cachedResult
	sf     singleflight.Group
}

// globalCacheStore is the singleton cache store for all reconcile operations.
var globalCacheStore = &cacheStore{
	caches: make(map[string]*cachedResult),
}

// GetOrBuild returns the cached result for the job,
// or reconciles again if none exists or it has expired.
// Concurrent callers for the same job share a single pass.
func GetOrBuild(ctx context.Context, job *Job) (*Result, error) {
	if job.CacheTTL <= 0 {
		return ReconcileAll(ctx, job)
	}

	cacheKey := job.CacheKey()

	// Fast path
	if res, ok := lookup(cacheKey); ok {
		return res, nil
	}

	// The pass is shared by every waiting caller and outlives any one caller's cancellation.
	shared := context.WithoutCancel(ctx)

	v, err, _ := globalCacheStore.sf.Do(cacheKey, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		if res, ok := lookup(cacheKey); ok {
			return res, nil
		}

		res, err := ReconcileAll(shared, job)
		if err != nil {
			return nil, err
		}

		globalCacheStore.mu.Lock()
		globalCacheStore.sweepExpiredLocked()
		globalCacheStore.caches[cacheKey] = &cachedResult{
			result: res,
			built:  time.Now(),
			ttl:    job.CacheTTL,
		}
		globalCacheStore.mu.Unlock()

		return res, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Result), nil
}

func lookup(key string) (*Result, bool) {
	globalCacheStore.mu.RLock()
	entry, ok := globalCacheStore.caches[key]
	globalCacheStore.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if entry.isExpired() {
		globalCacheStore.mu.Lock()
		// Another caller may have stored a fresh entry meanwhile.
		if current, ok := globalCacheStore.caches[key]; ok && current.isExpired() {
			delete(globalCacheStore.caches, key)
		}
		globalCacheStore.mu.Unlock()
		return nil, false
	}
	return entry.result, true
}

// sweepExpiredLocked drops every expired entry. Callers hold mu for writing.
func (s *cacheStore) sweepExpiredLocked() {
	for key, entry := range s.caches {
		if entry.isExpired() {
			delete(s.caches, key)
		}
	}
}

// InvalidateCache removes the cached result for the given job.
func InvalidateCache(job *Job) {
	cacheKey := job.CacheKey()
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.caches, cacheKey)
	globalCacheStore.mu.Unlock()
}
