package stats

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"catalog/feature/stats/models"

	metrics "github.com/bool64/stats"
	"github.com/jonboulle/clockwork"
)

// Metric names reported to the stats tracker.
const (
	MetricHit           = "stats_cache_hit"
	MetricMiss          = "stats_cache_miss"
	MetricInvalidate    = "stats_cache_invalidate"
	MetricCompute       = "stats_compute"
	MetricComputeFailed = "stats_compute_failed"
	MetricDiscarded     = "stats_compute_discarded"
)

// Entry is a snapshot together with the time it was installed.
type Entry struct {
	Snapshot  *models.Snapshot
	UpdatedAt time.Time
}

// Cache holds the current statistics snapshot.
//
// All state transitions happen under a single RWMutex, so readers never observe
// a snapshot with a mismatched timestamp. Every invalidation bumps the
// generation; SetIfCurrent uses it to reject results computed before the
// invalidation.
type Cache struct {
	mu    sync.RWMutex
	clock clockwork.Clock
	ttl   time.Duration
	stat  metrics.Tracker

	snapshot    *models.Snapshot
	lastUpdated time.Time
	calculating bool
	generation  uint64

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache creates an empty cache.
func NewCache(ttl time.Duration, clock clockwork.Clock, tracker metrics.Tracker) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if tracker == nil {
		tracker = metrics.NoOp{}
	}
	return &Cache{ttl: ttl, clock: clock, stat: tracker}
}

func (c *Cache) validLocked(now time.Time) bool {
	return c.snapshot != nil && now.Sub(c.lastUpdated) < c.ttl
}

// IsValid reports whether a snapshot is present and younger than the TTL.
func (c *Cache) IsValid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.validLocked(c.clock.Now())
}

// Get returns the snapshot if valid. Missing and stale are not distinguished.
func (c *Cache) Get() (*models.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.validLocked(c.clock.Now()) {
		return nil, false
	}
	return c.snapshot, true
}

// Lookup is Get plus the install time, read atomically. It records hit/miss metrics.
func (c *Cache) Lookup() (Entry, bool) {
	c.mu.RLock()
	valid := c.validLocked(c.clock.Now())
	entry := Entry{Snapshot: c.snapshot, UpdatedAt: c.lastUpdated}
	c.mu.RUnlock()

	if !valid {
		c.misses.Add(1)
		c.stat.Add(context.Background(), MetricMiss, 1)
		return Entry{}, false
	}
	c.hits.Add(1)
	c.stat.Add(context.Background(), MetricHit, 1)
	return entry, true
}

// Set installs snapshot, stamps it with the current time and clears the calculating flag.
func (c *Cache) Set(snapshot *models.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(snapshot)
}

// SetIfCurrent installs snapshot only if no invalidation happened since
// generation was read. It reports whether the snapshot was installed.
func (c *Cache) SetIfCurrent(generation uint64, snapshot *models.Snapshot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false
	}
	c.setLocked(snapshot)
	return true
}

func (c *Cache) setLocked(snapshot *models.Snapshot) {
	if snapshot == nil {
		c.snapshot = nil
		c.lastUpdated = time.Time{}
	} else {
		c.snapshot = snapshot
		c.lastUpdated = c.clock.Now()
	}
	c.calculating = false
}

// Invalidate drops the snapshot and the calculating flag. It is idempotent
// with respect to the cached state and safe to call at any time.
func (c *Cache) Invalidate() {
	c.invalidate()
}

func (c *Cache) invalidate() uint64 {
	c.mu.Lock()
	c.snapshot = nil
	c.lastUpdated = time.Time{}
	c.calculating = false
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	c.stat.Add(context.Background(), MetricInvalidate, 1)
	return gen
}

// IsCalculating reports whether a computation is marked in flight.
func (c *Cache) IsCalculating() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calculating
}

// SetCalculating sets the in-flight marker.
func (c *Cache) SetCalculating(calculating bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calculating = calculating
}

// Generation returns the number of invalidations so far.
func (c *Cache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Info returns a consistent view of the cache state.
func (c *Cache) Info() models.CacheInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.clock.Now()
	info := models.CacheInfo{
		CacheValid:  c.validLocked(now),
		TTL:         int64(c.ttl / time.Second),
		Calculating: c.calculating,
		Generation:  c.generation,
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
	}
	if c.snapshot != nil {
		updated := c.lastUpdated
		age := int64(now.Sub(updated) / time.Second)
		info.LastUpdated = &updated
		info.CacheAge = &age
	}
	return info
}
