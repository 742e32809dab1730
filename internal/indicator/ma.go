package indicator

import (
	"fmt"

	"stocklab/types"
)

// SMA returns the simple moving average of the closes over period bars.
// The first value lands on source index period-1.
func SMA(s *types.PriceSeries, period int) (Series, error) {
	if period < 1 {
		return Series{}, errPeriod("sma", period)
	}
	if s.Len() < period {
		return Series{}, errShort(fmt.Sprintf("sma(%d)", period), period, s.Len())
	}
	return Series{Start: period - 1, Values: smaVals(s.Closes(), period)}, nil
}

// EMA returns the exponential moving average of the closes, seeded with the
// simple average of the first period closes, k = 2/(period+1).
func EMA(s *types.PriceSeries, period int) (Series, error) {
	if period < 1 {
		return Series{}, errPeriod("ema", period)
	}
	if s.Len() < period {
		return Series{}, errShort(fmt.Sprintf("ema(%d)", period), period, s.Len())
	}
	return Series{Start: period - 1, Values: emaVals(s.Closes(), period)}, nil
}

func smaVals(x []float64, period int) []float64 {
	out := make([]float64, len(x)-period+1)
	var sum float64
	for i, v := range x {
		sum += v
		if i >= period {
			sum -= x[i-period]
		}
		if i >= period-1 {
			out[i-period+1] = sum / float64(period)
		}
	}
	return out
}

func emaVals(x []float64, period int) []float64 {
	out := make([]float64, len(x)-period+1)
	var seed float64
	for _, v := range x[:period] {
		seed += v
	}
	out[0] = seed / float64(period)

	k := 2.0 / float64(period+1)
	for i := period; i < len(x); i++ {
		out[i-period+1] = x[i]*k + out[i-period]*(1-k)
	}
	return out
}
