package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is one realized round trip: entered and exited at bar closes.
// Never mutated after creation.
type Trade struct {
	Ticker     string          `json:"ticker"`
	EntryTime  time.Time       `json:"entryTime"`
	EntryPrice decimal.Decimal `json:"entryPrice"`
	ExitTime   time.Time       `json:"exitTime"`
	ExitPrice  decimal.Decimal `json:"exitPrice"`
	Shares     decimal.Decimal `json:"shares"`
	Return     decimal.Decimal `json:"return"`
	PnL        decimal.Decimal `json:"pnl"`
}

// NewTrade derives Return and PnL from the fill prices. EntryPrice must be
// positive, which the backtest guarantees by refusing to enter at a zero
// close.
func NewTrade(ticker string, entryTime time.Time, entryPrice decimal.Decimal, exitTime time.Time, exitPrice, shares decimal.Decimal) Trade {
	return Trade{
		Ticker:     ticker,
		EntryTime:  entryTime,
		EntryPrice: entryPrice,
		ExitTime:   exitTime,
		ExitPrice:  exitPrice,
		Shares:     shares,
		Return:     exitPrice.Div(entryPrice).Sub(decimal.NewFromInt(1)),
		PnL:        exitPrice.Sub(entryPrice).Mul(shares),
	}
}

// Win reports whether the trade closed with a positive return.
func (t Trade) Win() bool {
	return t.Return.GreaterThan(decimal.Zero)
}
