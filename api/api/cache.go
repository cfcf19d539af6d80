/* cache.go
 * Contains the pool scoped snapshot cache. A single entry per pool, time boxed,
 * owned by the API value and injected where needed rather than held in a global
 * Authors: Zachary Bower
 */

package api

import (
	"fmt"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a snapshot is served without recomputation
const DefaultCacheTTL = 3 * time.Minute

// DefaultRefreshBudget bounds how long a caller waits on a fresh recompute
// before the previous snapshot is preferred
const DefaultRefreshBudget = 5 * time.Second

// PoolCache holds the single cached pool snapshot. Entries are replaced whole,
// never partially updated
type PoolCache struct {
	mu     sync.Mutex
	entry  *PoolSnapshot
	maxAge time.Duration
	budget time.Duration
}

// NewPoolCache creates a PoolCache with the given entry lifetime and refresh budget
// Preconditions: Receives the max entry age and the refresh time budget, zero
// values fall back to the package defaults
// Postconditions: Returns a pointer to an empty PoolCache
func NewPoolCache(maxAge time.Duration, budget time.Duration) *PoolCache {
	if maxAge <= 0 {
		maxAge = DefaultCacheTTL
	}
	if budget <= 0 {
		budget = DefaultRefreshBudget
	}
	return &PoolCache{maxAge: maxAge, budget: budget}
}

// Cached returns the entry when it is younger than the max age
// Preconditions: Receives the current time
// Postconditions: Returns the snapshot and true on a hit, nil and false otherwise
func (c *PoolCache) Cached(now time.Time) (*PoolSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry == nil || now.Sub(c.entry.GeneratedAt) >= c.maxAge {
		return nil, false
	}
	return c.entry, true
}

// Stale returns the entry regardless of age, or nil when none exists
func (c *PoolCache) Stale() *PoolSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entry
}

// Put replaces the cached entry
func (c *PoolCache) Put(snapshot *PoolSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = snapshot
}

// Invalidate drops the cached entry so the next read recomputes. Called when the
// results feed reports new data
func (c *PoolCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}

// Refresh runs the compute function under the cache's time budget. When the
// recompute overruns and a previous snapshot exists, that snapshot is returned
// with its original GeneratedAt so callers can detect staleness. The overrunning
// recompute still stores its result for later reads
// Preconditions: Receives the compute function for a fresh snapshot
// Postconditions: Returns a fresh or stale snapshot, or an error when the
// recompute failed or overran with nothing cached
func (c *PoolCache) Refresh(compute func() (*PoolSnapshot, error)) (*PoolSnapshot, error) {
	type result struct {
		snapshot *PoolSnapshot
		err      error
	}

	done := make(chan result, 1)
	go func() {
		snapshot, err := compute()
		if err == nil {
			c.Put(snapshot)
		}
		done <- result{snapshot, err}
	}()

	timer := time.NewTimer(c.budget)
	defer timer.Stop()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		return res.snapshot, nil
	case <-timer.C:
		if stale := c.Stale(); stale != nil {
			return stale, nil
		}
		return nil, fmt.Errorf("pool snapshot recompute exceeded the %s budget and no previous snapshot exists", c.budget)
	}
}
