// Package strategy turns indicator series into directional signals. The
// rule set is a closed family: SMA crossover, RSI mean reversion, MACD
// crossover and Donchian breakout, built through New by config name.
package strategy

import (
	"errors"
	"fmt"

	"stocklab/types"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

const (
	NameSMACross         = "sma_cross"
	NameRSIReversion     = "rsi_reversion"
	NameMACDCross        = "macd_cross"
	NameDonchianBreakout = "donchian_breakout"
)

// Strategy evaluates one price series into one signal per bar. Signals
// returns a slice aligned 1:1 with the series bars; indexes inside the
// warm-up window and the first defined index are Neutral, since a crossing
// needs a previous value.
type Strategy interface {
	Name() string
	Warmup() int
	Signals(s *types.PriceSeries) ([]types.Signal, error)
}

// Params carries the tunable knobs of all built-in rule sets. Zero values
// fall back to each strategy's defaults.
type Params struct {
	Fast       int
	Slow       int
	Signal     int
	Period     int
	Oversold   float64
	Overbought float64
}

// New builds a strategy by its config name.
func New(name string, p Params) (Strategy, error) {
	switch name {
	case NameSMACross:
		return NewSMACross(p.Fast, p.Slow)
	case NameRSIReversion:
		return NewRSIReversion(p.Period, p.Oversold, p.Overbought)
	case NameMACDCross:
		return NewMACDCross(p.Fast, p.Slow, p.Signal)
	case NameDonchianBreakout:
		return NewDonchianBreakout(p.Period)
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
}

// crossedAbove reports whether a moved from at-or-below b to above b
// between two consecutive bars.
func crossedAbove(aPrev, aCur, bPrev, bCur float64) bool {
	return aPrev <= bPrev && aCur > bCur
}

func crossedBelow(aPrev, aCur, bPrev, bCur float64) bool {
	return aPrev >= bPrev && aCur < bCur
}

// neutralSignals pre-fills one neutral signal per bar; strategies then
// overwrite the bars where a crossing fires.
func neutralSignals(s *types.PriceSeries) []types.Signal {
	out := make([]types.Signal, s.Len())
	times := s.Times()
	for i := range out {
		out[i] = types.NewSignal(types.SignalNeutral, times[i], "")
	}
	return out
}
