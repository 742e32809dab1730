package indicator

import (
	"fmt"

	"stocklab/types"
)

// RSI returns the relative strength index of the closes over period bars
// using Wilder smoothing: a simple average over the first period changes,
// then exponential with alpha = 1/period. The first value lands on source
// index period. While the average loss is zero the value is pinned to 100,
// so a loss-free window never divides by zero.
func RSI(s *types.PriceSeries, period int) (Series, error) {
	if period < 1 {
		return Series{}, errPeriod("rsi", period)
	}
	if s.Len() < period+1 {
		return Series{}, errShort(fmt.Sprintf("rsi(%d)", period), period+1, s.Len())
	}
	return Series{Start: period, Values: rsiVals(s.Closes(), period)}, nil
}

func rsiVals(x []float64, period int) []float64 {
	out := make([]float64, len(x)-period)

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		d := x[i] - x[i-1]
		if d > 0 {
			avgGain += d
		} else {
			avgLoss -= d
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[0] = rsiFrom(avgGain, avgLoss)

	p := float64(period)
	for i := period + 1; i < len(x); i++ {
		d := x[i] - x[i-1]
		var gain, loss float64
		if d > 0 {
			gain = d
		} else {
			loss = -d
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		out[i-period] = rsiFrom(avgGain, avgLoss)
	}
	return out
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
