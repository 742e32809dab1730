package indicator

import (
	"fmt"
	"math"

	"stocklab/types"
)

// BollingerSeries bundles the three bands. All share the same offset.
type BollingerSeries struct {
	Upper  Series `json:"upper"`
	Middle Series `json:"middle"`
	Lower  Series `json:"lower"`
}

// Bollinger computes middle = SMA(period) of the closes and bands at width
// population standard deviations above and below it.
func Bollinger(s *types.PriceSeries, period int, width float64) (BollingerSeries, error) {
	name := fmt.Sprintf("bollinger(%d)", period)
	if period < 1 {
		return BollingerSeries{}, errPeriod("bollinger", period)
	}
	if width <= 0 {
		return BollingerSeries{}, fmt.Errorf("%s: width %v must be positive", name, width)
	}
	if s.Len() < period {
		return BollingerSeries{}, errShort(name, period, s.Len())
	}

	closes := s.Closes()
	middle := smaVals(closes, period)
	std := rollingStd(closes, period)

	upper := make([]float64, len(middle))
	lower := make([]float64, len(middle))
	for i := range middle {
		band := width * std[i]
		upper[i] = middle[i] + band
		lower[i] = middle[i] - band
	}

	start := period - 1
	return BollingerSeries{
		Upper:  Series{Start: start, Values: upper},
		Middle: Series{Start: start, Values: middle},
		Lower:  Series{Start: start, Values: lower},
	}, nil
}

// rollingStd is the population standard deviation over each trailing window.
// Running sums can push the variance a hair below zero on flat windows, so
// it clamps before the square root.
func rollingStd(x []float64, period int) []float64 {
	out := make([]float64, len(x)-period+1)
	p := float64(period)
	var sum, sumSq float64
	for i, v := range x {
		sum += v
		sumSq += v * v
		if i >= period {
			sum -= x[i-period]
			sumSq -= x[i-period] * x[i-period]
		}
		if i >= period-1 {
			mean := sum / p
			variance := sumSq/p - mean*mean
			if variance < 0 {
				variance = 0
			}
			out[i-period+1] = math.Sqrt(variance)
		}
	}
	return out
}
