package ingest

import "marketradar/internal"

const highRatedMin = 4.0

type tracker struct {
	attempted    int
	valid        int
	maxPrice     float64
	minHighRated float64
	hasFloor     bool
}

func (t *tracker) observe(price, rating float64) {
	t.attempted++
	if price <= 0 {
		return
	}
	t.valid++
	if price > t.maxPrice {
		t.maxPrice = price
	}
	if rating >= highRatedMin && (!t.hasFloor || price < t.minHighRated) {
		t.minHighRated = price
		t.hasFloor = true
	}
}

func (t *tracker) fill(b *internal.Batch) {
	b.RowsAttempted = t.attempted
	b.ValidPriceCount = t.valid
	b.MaxPrice = t.maxPrice
	if t.hasFloor {
		b.MinPriceHighRated = t.minHighRated
	}
}

// Zero-price records score 0 so the output never carries Inf or NaN.
func valueScore(rating, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return rating * rating * 10 / price
}
