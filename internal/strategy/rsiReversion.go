package strategy

import (
	"fmt"

	"stocklab/internal/indicator"
	"stocklab/types"
)

const (
	defaultRSIPeriod     = 14
	defaultRSIOversold   = 30
	defaultRSIOverbought = 70
)

// RSIReversion trades the oscillator leaving its extremes: a cross up
// through the oversold line is bullish, a cross down through the
// overbought line is bearish.
type RSIReversion struct {
	period     int
	oversold   float64
	overbought float64
}

func NewRSIReversion(period int, oversold, overbought float64) (*RSIReversion, error) {
	if period == 0 {
		period = defaultRSIPeriod
	}
	if oversold == 0 {
		oversold = defaultRSIOversold
	}
	if overbought == 0 {
		overbought = defaultRSIOverbought
	}
	if period < 1 {
		return nil, fmt.Errorf("rsi reversion: period %d must be positive", period)
	}
	if oversold < 0 || overbought > 100 || oversold >= overbought {
		return nil, fmt.Errorf("rsi reversion: thresholds %v/%v must satisfy 0 <= oversold < overbought <= 100",
			oversold, overbought)
	}
	return &RSIReversion{period: period, oversold: oversold, overbought: overbought}, nil
}

func (s *RSIReversion) Name() string {
	return fmt.Sprintf("RSI Reversion %d (%v/%v)", s.period, s.oversold, s.overbought)
}

// Warmup is period+1 bars for the first RSI value, plus one for the
// previous reading.
func (s *RSIReversion) Warmup() int {
	return s.period + 2
}

func (s *RSIReversion) Signals(series *types.PriceSeries) ([]types.Signal, error) {
	rsi, err := indicator.RSI(series, s.period)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}

	out := neutralSignals(series)
	times := series.Times()
	for i := rsi.Start + 1; i < series.Len(); i++ {
		prev, _ := rsi.At(i - 1)
		cur, _ := rsi.At(i)

		switch {
		case crossedAbove(prev, cur, s.oversold, s.oversold):
			out[i] = types.NewSignal(types.SignalBullish, times[i],
				fmt.Sprintf("RSI(%d) crossed above %v", s.period, s.oversold))
		case crossedBelow(prev, cur, s.overbought, s.overbought):
			out[i] = types.NewSignal(types.SignalBearish, times[i],
				fmt.Sprintf("RSI(%d) crossed below %v", s.period, s.overbought))
		}
	}
	return out, nil
}
