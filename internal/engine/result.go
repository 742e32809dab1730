package engine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stocklab/types"
)

// Result is everything one run produced. Trades holds realized round trips
// only; a position still open at the last bar sits in Open and is already
// marked to market in the equity curve.
type Result struct {
	ID             uuid.UUID         `json:"id"`
	Ticker         string            `json:"ticker"`
	Strategy       string            `json:"strategy"`
	InitialCapital decimal.Decimal   `json:"initialCapital"`
	Signals        []types.Signal    `json:"signals"`
	Trades         []types.Trade     `json:"trades"`
	Equity         types.EquityCurve `json:"equity"`
	BuyHold        types.EquityCurve `json:"buyHold"`
	Open           *Position         `json:"open,omitempty"`
	Report         *Report           `json:"report"`
}

// FinalEquity is the account value at the last bar.
func (r *Result) FinalEquity() decimal.Decimal {
	return r.Equity.Final()
}
