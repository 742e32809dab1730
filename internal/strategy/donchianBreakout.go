package strategy

import (
	"fmt"

	"stocklab/internal/indicator"
	"stocklab/types"
)

const defaultDonchianPeriod = 20

// DonchianBreakout signals on price escaping the channel drawn over the
// preceding period bars: a high above the channel top is bullish, a low
// below the channel bottom is bearish.
type DonchianBreakout struct {
	period int
}

func NewDonchianBreakout(period int) (*DonchianBreakout, error) {
	if period == 0 {
		period = defaultDonchianPeriod
	}
	if period < 1 {
		return nil, fmt.Errorf("donchian breakout: period %d must be positive", period)
	}
	return &DonchianBreakout{period: period}, nil
}

func (d *DonchianBreakout) Name() string {
	return fmt.Sprintf("Donchian Breakout %d", d.period)
}

// Warmup is the first bar count at which a breakout can fire: the channel
// needs period completed bars before the bar under test.
func (d *DonchianBreakout) Warmup() int {
	return d.period + 1
}

func (d *DonchianBreakout) Signals(series *types.PriceSeries) ([]types.Signal, error) {
	if series.Len() < d.Warmup() {
		return nil, fmt.Errorf("%s needs %d bars, series has %d: %w",
			d.Name(), d.Warmup(), series.Len(), indicator.ErrInsufficientData)
	}

	highs := series.Highs()
	lows := series.Lows()

	out := neutralSignals(series)
	times := series.Times()
	for i := d.period; i < series.Len(); i++ {
		top, bottom := channel(highs[i-d.period:i], lows[i-d.period:i])

		brokeUp := highs[i] > top
		brokeDown := lows[i] < bottom
		switch {
		case brokeUp && brokeDown:
			// A bar spanning the whole channel gives no direction.
		case brokeUp:
			out[i] = types.NewSignal(types.SignalBullish, times[i],
				fmt.Sprintf("high broke above the %d-bar channel top", d.period))
		case brokeDown:
			out[i] = types.NewSignal(types.SignalBearish, times[i],
				fmt.Sprintf("low broke below the %d-bar channel bottom", d.period))
		}
	}
	return out, nil
}

// channel returns the highest high and lowest low of the window.
func channel(highs, lows []float64) (top, bottom float64) {
	top = highs[0]
	bottom = lows[0]
	for i := 1; i < len(highs); i++ {
		if highs[i] > top {
			top = highs[i]
		}
		if lows[i] < bottom {
			bottom = lows[i]
		}
	}
	return top, bottom
}
