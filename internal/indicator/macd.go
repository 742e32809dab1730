package indicator

import (
	"fmt"

	"stocklab/types"
)

// MACDSeries bundles the MACD line, its signal line and the histogram.
// Line is defined from source index slow-1; Signal and Hist from
// slow+signal-2, once the signal EMA has seeded over the line.
type MACDSeries struct {
	Line   Series `json:"line"`
	Signal Series `json:"signal"`
	Hist   Series `json:"hist"`
}

// MACD computes line = EMA(fast) - EMA(slow) over the closes, signal =
// EMA(signal periods) of the line, hist = line - signal.
func MACD(s *types.PriceSeries, fast, slow, signal int) (MACDSeries, error) {
	name := fmt.Sprintf("macd(%d,%d,%d)", fast, slow, signal)
	if fast < 1 || slow < 1 || signal < 1 {
		return MACDSeries{}, fmt.Errorf("%s: all periods must be positive", name)
	}
	if fast >= slow {
		return MACDSeries{}, fmt.Errorf("%s: fast period must be shorter than slow", name)
	}
	need := slow + signal - 1
	if s.Len() < need {
		return MACDSeries{}, errShort(name, need, s.Len())
	}

	closes := s.Closes()
	emaFast := emaVals(closes, fast) // starts at fast-1
	emaSlow := emaVals(closes, slow) // starts at slow-1

	line := make([]float64, len(emaSlow))
	for i := range line {
		line[i] = emaFast[i+slow-fast] - emaSlow[i]
	}

	sig := emaVals(line, signal)
	hist := make([]float64, len(sig))
	for i := range hist {
		hist[i] = line[i+signal-1] - sig[i]
	}

	return MACDSeries{
		Line:   Series{Start: slow - 1, Values: line},
		Signal: Series{Start: slow + signal - 2, Values: sig},
		Hist:   Series{Start: slow + signal - 2, Values: hist},
	}, nil
}
