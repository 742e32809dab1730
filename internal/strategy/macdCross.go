package strategy

import (
	"fmt"

	"stocklab/internal/indicator"
	"stocklab/types"
)

const (
	defaultMACDFast   = 12
	defaultMACDSlow   = 26
	defaultMACDSignal = 9
)

// MACDCross signals on the MACD line crossing its signal line.
type MACDCross struct {
	fast   int
	slow   int
	signal int
}

func NewMACDCross(fast, slow, signal int) (*MACDCross, error) {
	if fast == 0 {
		fast = defaultMACDFast
	}
	if slow == 0 {
		slow = defaultMACDSlow
	}
	if signal == 0 {
		signal = defaultMACDSignal
	}
	if fast < 1 || slow < 1 || signal < 1 {
		return nil, fmt.Errorf("macd cross: periods %d/%d/%d must be positive", fast, slow, signal)
	}
	if fast >= slow {
		return nil, fmt.Errorf("macd cross: fast period %d must be shorter than slow %d", fast, slow)
	}
	return &MACDCross{fast: fast, slow: slow, signal: signal}, nil
}

func (s *MACDCross) Name() string {
	return fmt.Sprintf("MACD Cross %d/%d/%d", s.fast, s.slow, s.signal)
}

// Warmup is the signal line's first bar count plus one for the previous
// reading.
func (s *MACDCross) Warmup() int {
	return s.slow + s.signal
}

func (s *MACDCross) Signals(series *types.PriceSeries) ([]types.Signal, error) {
	macd, err := indicator.MACD(series, s.fast, s.slow, s.signal)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}

	out := neutralSignals(series)
	times := series.Times()
	for i := macd.Signal.Start + 1; i < series.Len(); i++ {
		linePrev, _ := macd.Line.At(i - 1)
		lineCur, _ := macd.Line.At(i)
		sigPrev, _ := macd.Signal.At(i - 1)
		sigCur, _ := macd.Signal.At(i)

		switch {
		case crossedAbove(linePrev, lineCur, sigPrev, sigCur):
			out[i] = types.NewSignal(types.SignalBullish, times[i],
				"MACD line crossed above signal line")
		case crossedBelow(linePrev, lineCur, sigPrev, sigCur):
			out[i] = types.NewSignal(types.SignalBearish, times[i],
				"MACD line crossed below signal line")
		}
	}
	return out, nil
}
