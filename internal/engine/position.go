package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"stocklab/types"
)

// Position is the open long leg between an entry fill and its exit. Shares
// are fixed at entry as capital divided by the entry close; the account is
// fully invested while the position lives.
type Position struct {
	Ticker     string          `json:"ticker"`
	EntryTime  time.Time       `json:"entryTime"`
	EntryPrice decimal.Decimal `json:"entryPrice"`
	Shares     decimal.Decimal `json:"shares"`
}

func openPosition(ticker string, cur types.Bar, cash decimal.Decimal) *Position {
	return &Position{
		Ticker:     ticker,
		EntryTime:  cur.Timestamp,
		EntryPrice: cur.Close,
		Shares:     cash.Div(cur.Close),
	}
}

// Value marks the position to market at the given price.
func (p *Position) Value(price decimal.Decimal) decimal.Decimal {
	return p.Shares.Mul(price)
}

// UnrealizedPnL is the open profit against the entry fill at the given
// price.
func (p *Position) UnrealizedPnL(price decimal.Decimal) decimal.Decimal {
	return price.Sub(p.EntryPrice).Mul(p.Shares)
}

// settle closes the position at the bar close and returns the realized
// round trip.
func (p *Position) settle(cur types.Bar) types.Trade {
	return types.NewTrade(p.Ticker, p.EntryTime, p.EntryPrice, cur.Timestamp, cur.Close, p.Shares)
}
