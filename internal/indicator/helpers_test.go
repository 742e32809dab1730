package indicator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stocklab/types"
)

// ----------------Helper functions----------------

// seriesOf builds a valid daily series around the given closes. Opens equal
// the closes and highs/lows wrap them by one point, so only the closes
// matter to close-based indicators.
func seriesOf(t *testing.T, closes []float64) *types.PriceSeries {
	t.Helper()
	bars := make([]types.Bar, len(closes))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		low := c - 1
		if low < 0 {
			low = 0
		}
		bars[i] = types.Bar{
			Open:      decimal.NewFromFloat(c),
			High:      decimal.NewFromFloat(c + 1),
			Low:       decimal.NewFromFloat(low),
			Close:     decimal.NewFromFloat(c),
			Volume:    decimal.NewFromInt(1000),
			Timestamp: start.AddDate(0, 0, i),
		}
	}
	s, err := types.NewPriceSeries("TEST", bars)
	if err != nil {
		t.Fatalf("NewPriceSeries() error = %v", err)
	}
	return s
}

// randomWalk produces a deterministic price path with both gains and
// losses, bounded away from zero.
func randomWalk(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	price := 100.0
	for i := range out {
		price += rng.Float64()*4 - 2
		if price < 5 {
			price = 5
		}
		out[i] = price
	}
	return out
}

func approx(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
