package indicator

import (
	"errors"
	"fmt"

	"stocklab/types"
)

var ErrUnknownResetPolicy = errors.New("unknown vwap reset policy")

// ResetPolicy controls where VWAP accumulation restarts.
type ResetPolicy string

const (
	// ResetSeries accumulates from the first bar of the series onward.
	ResetSeries ResetPolicy = "series"
	// ResetSession restarts accumulation at each new UTC calendar day.
	ResetSession ResetPolicy = "session"
)

func ParseResetPolicy(s string) (ResetPolicy, error) {
	switch ResetPolicy(s) {
	case ResetSeries, ResetSession:
		return ResetPolicy(s), nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownResetPolicy)
}

// VWAP returns cumulative(typical price * volume) / cumulative(volume),
// with the typical price (high+low+close)/3. It is defined from the first
// bar. While the accumulated volume is still zero the value falls back to
// the bar's typical price, so volume-free stretches stay defined instead of
// dividing by zero.
func VWAP(s *types.PriceSeries, policy ResetPolicy) (Series, error) {
	if policy != ResetSeries && policy != ResetSession {
		return Series{}, fmt.Errorf("%q: %w", policy, ErrUnknownResetPolicy)
	}

	highs, lows, closes, volumes := s.Highs(), s.Lows(), s.Closes(), s.Volumes()
	times := s.Times()

	out := make([]float64, s.Len())
	var sumPV, sumV float64
	for i := range out {
		if policy == ResetSession && i > 0 {
			y1, m1, d1 := times[i-1].UTC().Date()
			y2, m2, d2 := times[i].UTC().Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				sumPV, sumV = 0, 0
			}
		}
		tp := (highs[i] + lows[i] + closes[i]) / 3
		sumPV += tp * volumes[i]
		sumV += volumes[i]
		if sumV == 0 {
			out[i] = tp
			continue
		}
		out[i] = sumPV / sumV
	}
	return Series{Start: 0, Values: out}, nil
}
