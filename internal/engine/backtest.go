package engine

import (
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"

	"stocklab/types"
)

// backtester walks the bars once and carries the only mutable state of a
// run: cash while flat, the open position while long. Entries and exits
// both fill at the signal bar's close.
type backtester struct {
	series  *types.PriceSeries
	signals []types.Signal

	cash   decimal.Decimal
	open   *Position
	trades []types.Trade
	equity types.EquityCurve

	bar *progressbar.ProgressBar
}

func newBacktester(series *types.PriceSeries, signals []types.Signal, capital decimal.Decimal, showProgress bool) *backtester {
	b := &backtester{
		series:  series,
		signals: signals,
		cash:    capital,
		trades:  []types.Trade{},
		equity:  make(types.EquityCurve, 0, series.Len()),
	}
	if showProgress {
		b.bar = initProgressBar(series.Len())
	}
	return b
}

func (b *backtester) run() {
	for i := 0; i < b.series.Len(); i++ {
		cur := b.series.Bar(i)

		switch b.signals[i].Kind {
		case types.SignalBullish:
			// A zero close cannot price an all-in entry, so the signal
			// is ignored and the account stays flat.
			if b.open == nil && cur.Close.GreaterThan(decimal.Zero) {
				b.open = openPosition(b.series.Ticker(), cur, b.cash)
				b.cash = decimal.Zero
			}
		case types.SignalBearish:
			if b.open != nil {
				trade := b.open.settle(cur)
				b.trades = append(b.trades, trade)
				b.cash = trade.ExitPrice.Mul(trade.Shares)
				b.open = nil
			}
		}

		b.equity = append(b.equity, types.EquityPoint{
			Time:   cur.Timestamp,
			Equity: b.markToMarket(cur),
		})
		if b.bar != nil {
			b.bar.Add(1)
		}
	}
}

// markToMarket values the account at the bar close. A position still open
// on the last bar shows up here but never in the trade log.
func (b *backtester) markToMarket(cur types.Bar) decimal.Decimal {
	if b.open == nil {
		return b.cash
	}
	return b.open.Value(cur.Close)
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Backtesting in progress..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
