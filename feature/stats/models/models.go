package models

import "time"

// PriceRange is the min/max over valid prices.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Snapshot is an immutable aggregate over the whole item collection.
// Once installed in the cache it must not be mutated.
type Snapshot struct {
	Total          int            `json:"total"`
	AveragePrice   float64        `json:"averagePrice"`
	TotalValue     float64        `json:"totalValue"`
	PriceRange     PriceRange     `json:"priceRange"`
	Categories     map[string]int `json:"categories"`
	ValidItemCount int            `json:"validItems"`
	// CalculationDurationMs is the wall-clock time of the aggregation pass.
	CalculationDurationMs float64   `json:"calculationTime"`
	ComputedAt            time.Time `json:"cacheTimestamp"`
}

// CacheInfo is the operational view of the stats cache.
type CacheInfo struct {
	CacheValid   bool       `json:"cacheValid"`
	LastUpdated  *time.Time `json:"lastUpdated"`
	CacheAge     *int64     `json:"cacheAge"`
	TTL          int64      `json:"ttl"`
	Calculating  bool       `json:"calculating"`
	Generation   uint64     `json:"generation"`
	Hits         uint64     `json:"hits"`
	Misses       uint64     `json:"misses"`
	FileWatching string     `json:"fileWatching"`
}

// RefreshResponse is the body of POST /api/stats/refresh.
type RefreshResponse struct {
	Message string    `json:"message"`
	Stats   *Snapshot `json:"stats"`
}
