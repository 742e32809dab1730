package strategy

import (
	"fmt"

	"stocklab/internal/indicator"
	"stocklab/types"
)

const (
	defaultSMAFast = 20
	defaultSMASlow = 50
)

// SMACross signals on the fast average crossing the slow one: above is
// bullish, below is bearish.
type SMACross struct {
	fast int
	slow int
}

func NewSMACross(fast, slow int) (*SMACross, error) {
	if fast == 0 {
		fast = defaultSMAFast
	}
	if slow == 0 {
		slow = defaultSMASlow
	}
	if fast < 1 || slow < 1 {
		return nil, fmt.Errorf("sma cross: periods %d/%d must be positive", fast, slow)
	}
	if fast >= slow {
		return nil, fmt.Errorf("sma cross: fast period %d must be shorter than slow %d", fast, slow)
	}
	return &SMACross{fast: fast, slow: slow}, nil
}

func (s *SMACross) Name() string {
	return fmt.Sprintf("SMA Cross %d/%d", s.fast, s.slow)
}

// Warmup is the first bar count at which a crossing can fire: the slow
// average needs slow bars, plus one more for the previous reading.
func (s *SMACross) Warmup() int {
	return s.slow + 1
}

func (s *SMACross) Signals(series *types.PriceSeries) ([]types.Signal, error) {
	fast, err := indicator.SMA(series, s.fast)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	slow, err := indicator.SMA(series, s.slow)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}

	out := neutralSignals(series)
	times := series.Times()
	for i := slow.Start + 1; i < series.Len(); i++ {
		fPrev, _ := fast.At(i - 1)
		fCur, _ := fast.At(i)
		slPrev, _ := slow.At(i - 1)
		slCur, _ := slow.At(i)

		switch {
		case crossedAbove(fPrev, fCur, slPrev, slCur):
			out[i] = types.NewSignal(types.SignalBullish, times[i],
				fmt.Sprintf("SMA(%d) crossed above SMA(%d)", s.fast, s.slow))
		case crossedBelow(fPrev, fCur, slPrev, slCur):
			out[i] = types.NewSignal(types.SignalBearish, times[i],
				fmt.Sprintf("SMA(%d) crossed below SMA(%d)", s.fast, s.slow))
		}
	}
	return out, nil
}
