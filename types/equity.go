package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquityPoint is one mark-to-market account valuation.
type EquityPoint struct {
	Time   time.Time       `json:"time"`
	Equity decimal.Decimal `json:"equity"`
}

// EquityCurve holds one point per bar, in bar order.
type EquityCurve []EquityPoint

// Final returns the last equity value, zero for an empty curve.
func (c EquityCurve) Final() decimal.Decimal {
	if len(c) == 0 {
		return decimal.Zero
	}
	return c[len(c)-1].Equity
}

// Returns converts the curve into simple bar-over-bar returns. Points on a
// zero base contribute a zero return so a flat broke account cannot divide
// by zero.
func (c EquityCurve) Returns() []float64 {
	if len(c) < 2 {
		return nil
	}
	out := make([]float64, 0, len(c)-1)
	for i := 1; i < len(c); i++ {
		prev := c[i-1].Equity
		if prev.IsZero() {
			out = append(out, 0)
			continue
		}
		out = append(out, c[i].Equity.Div(prev).Sub(decimal.NewFromInt(1)).InexactFloat64())
	}
	return out
}
