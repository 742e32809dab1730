package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidBar = errors.New("invalid bar")

// Bar is one OHLCV observation for a fixed time interval.
type Bar struct {
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}

// Validate rejects malformed OHLCV. Bad bars are never repaired, only refused.
func (b Bar) Validate() error {
	if b.Timestamp.IsZero() {
		return fmt.Errorf("zero timestamp: %w", ErrInvalidBar)
	}
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"open", b.Open},
		{"high", b.High},
		{"low", b.Low},
		{"close", b.Close},
		{"volume", b.Volume},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("negative %s %s: %w", f.name, f.value, ErrInvalidBar)
		}
	}
	bodyHigh := decimal.Max(b.Open, b.Close)
	bodyLow := decimal.Min(b.Open, b.Close)
	if b.High.LessThan(bodyHigh) {
		return fmt.Errorf("high %s below max(open, close) %s: %w", b.High, bodyHigh, ErrInvalidBar)
	}
	if b.Low.GreaterThan(bodyLow) {
		return fmt.Errorf("low %s above min(open, close) %s: %w", b.Low, bodyLow, ErrInvalidBar)
	}
	return nil
}

// TypicalPrice is (high + low + close) / 3.
func (b Bar) TypicalPrice() decimal.Decimal {
	return b.High.Add(b.Low).Add(b.Close).Div(decimal.NewFromInt(3))
}
