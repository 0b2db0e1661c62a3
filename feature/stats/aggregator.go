package stats

import (
	"math"
	"time"

	"catalog/core/utils"
	itemmodels "catalog/feature/items/models"
	"catalog/feature/stats/models"
)

// Aggregate computes the statistics snapshot of items in a single pass.
// Items with a missing or malformed price still count towards Total and their
// category; only price aggregates skip them. ComputedAt is left for the caller.
func Aggregate(items []itemmodels.Item) *models.Snapshot {
	start := time.Now()

	var (
		sum   float64
		valid int
		lo    = math.Inf(1)
		hi    = math.Inf(-1)
	)
	categories := make(map[string]int)

	for i := range items {
		if price, ok := utils.ToFloat(items[i].Price); ok && price >= 0 {
			sum += price
			valid++
			lo = math.Min(lo, price)
			hi = math.Max(hi, price)
		}
		if c := items[i].Category; c != "" {
			categories[c]++
		}
	}

	snap := &models.Snapshot{
		Total:          len(items),
		TotalValue:     utils.Round(sum, 2),
		Categories:     categories,
		ValidItemCount: valid,
	}
	if valid > 0 {
		snap.AveragePrice = utils.Round(sum/float64(valid), 2)
		snap.PriceRange = models.PriceRange{Min: lo, Max: hi}
	}

	elapsed := time.Since(start)
	snap.CalculationDurationMs = utils.Round(float64(elapsed.Nanoseconds())/1e6, 2)
	return snap
}
