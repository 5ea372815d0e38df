package metrics

import "marketradar/internal"

// An empty batch reports zeros, never infinities.
func Compute(batch internal.Batch) internal.AggregateStats {
	stats := internal.AggregateStats{
		Count:         len(batch.Records),
		MarketCeiling: batch.MaxPrice,
		MarketFloor:   batch.MinPriceHighRated,
	}

	if batch.RowsAttempted > 0 {
		stats.SignalIntegrity = float64(batch.ValidPriceCount) / float64(batch.RowsAttempted) * 100
	}

	if len(batch.Records) == 0 {
		return stats
	}

	sum := 0.0
	min := batch.Records[0].TotalPrice
	max := batch.Records[0].TotalPrice
	for _, r := range batch.Records {
		sum += r.TotalPrice
		if r.TotalPrice < min {
			min = r.TotalPrice
		}
		if r.TotalPrice > max {
			max = r.TotalPrice
		}
	}

	stats.AveragePrice = sum / float64(len(batch.Records))
	stats.MinPrice = min
	stats.MaxPrice = max
	return stats
}

func GoodDeal(record internal.ProductRecord, averagePrice, threshold float64) bool {
	if averagePrice <= 0 {
		return false
	}
	return record.TotalPrice < averagePrice*threshold
}
