// Package analysis flattens a price series and its indicators into a
// chartable frame and a compact snapshot for narrative generation.
package analysis

import (
	"math"
	"time"

	"stocklab/internal/indicator"
	"stocklab/types"
)

// Standard lookbacks for the snapshot and frame columns.
const (
	fastSMAPeriod = 20
	slowSMAPeriod = 50
	emaPeriod     = 20
	rsiPeriod     = 14
	macdFast      = 12
	macdSlow      = 26
	macdSignal    = 9
	bollPeriod    = 20
	bollWidth     = 2.0

	yearBars   = 252 // trading days in the trailing 52-week window
	volumeBars = 20
)

type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// Summary is the stable numeric snapshot handed to the narrative
// generator: the latest close and its change, the trailing 52-week range
// and average volume, the latest value of each indicator with enough
// history, a trend reading and the most recent non-neutral signal.
// An indicator whose warm-up exceeds the series is absent, not an error.
type Summary struct {
	Ticker string    `json:"ticker"`
	AsOf   time.Time `json:"asOf"`
	Close  float64   `json:"close"`

	Change      *float64 `json:"change,omitempty"`
	ChangePct   *float64 `json:"changePct,omitempty"`
	High52W     float64  `json:"high52w"`
	Low52W      float64  `json:"low52w"`
	AvgVolume20 float64  `json:"avgVolume20"`

	SMA20      *float64 `json:"sma20,omitempty"`
	SMA50      *float64 `json:"sma50,omitempty"`
	EMA20      *float64 `json:"ema20,omitempty"`
	RSI14      *float64 `json:"rsi14,omitempty"`
	MACD       *float64 `json:"macd,omitempty"`
	MACDSignal *float64 `json:"macdSignal,omitempty"`
	MACDHist   *float64 `json:"macdHist,omitempty"`
	BollUpper  *float64 `json:"bollUpper,omitempty"`
	BollMiddle *float64 `json:"bollMiddle,omitempty"`
	BollLower  *float64 `json:"bollLower,omitempty"`
	VWAP       *float64 `json:"vwap,omitempty"`

	Trend      Trend         `json:"trend"`
	LastSignal *types.Signal `json:"lastSignal,omitempty"`
}

// Summarize condenses the series tail. The signals argument is the
// strategy output for the same series and may be nil when no strategy ran.
func Summarize(s *types.PriceSeries, signals []types.Signal, policy indicator.ResetPolicy) Summary {
	last := s.Last()
	sum := Summary{
		Ticker: s.Ticker(),
		AsOf:   last.Timestamp,
		Close:  last.Close.InexactFloat64(),
	}

	if n := s.Len(); n > 1 {
		prev := s.Bar(n - 2).Close.InexactFloat64()
		change := sum.Close - prev
		sum.Change = &change
		if prev != 0 {
			pct := change / prev
			sum.ChangePct = &pct
		}
	}
	sum.High52W, sum.Low52W = trailingRange(s, yearBars)
	sum.AvgVolume20 = trailingAvgVolume(s, volumeBars)

	if sma, err := indicator.SMA(s, fastSMAPeriod); err == nil {
		sum.SMA20 = lastOf(sma)
	}
	if sma, err := indicator.SMA(s, slowSMAPeriod); err == nil {
		sum.SMA50 = lastOf(sma)
	}
	if ema, err := indicator.EMA(s, emaPeriod); err == nil {
		sum.EMA20 = lastOf(ema)
	}
	if rsi, err := indicator.RSI(s, rsiPeriod); err == nil {
		sum.RSI14 = lastOf(rsi)
	}
	if macd, err := indicator.MACD(s, macdFast, macdSlow, macdSignal); err == nil {
		sum.MACD = lastOf(macd.Line)
		sum.MACDSignal = lastOf(macd.Signal)
		sum.MACDHist = lastOf(macd.Hist)
	}
	if boll, err := indicator.Bollinger(s, bollPeriod, bollWidth); err == nil {
		sum.BollUpper = lastOf(boll.Upper)
		sum.BollMiddle = lastOf(boll.Middle)
		sum.BollLower = lastOf(boll.Lower)
	}
	if vwap, err := indicator.VWAP(s, policy); err == nil {
		sum.VWAP = lastOf(vwap)
	}

	sum.Trend = trendOf(sum.Close, sum.SMA20, sum.SMA50)
	sum.LastSignal = lastNonNeutral(signals)
	return sum
}

func lastOf(series indicator.Series) *float64 {
	v, ok := series.Last()
	if !ok {
		return nil
	}
	return &v
}

// trailingRange scans the last n bars for the highest high and lowest low.
func trailingRange(s *types.PriceSeries, n int) (high, low float64) {
	start := s.Len() - n
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < s.Len(); i++ {
		b := s.Bar(i)
		if h := b.High.InexactFloat64(); h > high {
			high = h
		}
		if l := b.Low.InexactFloat64(); l < low {
			low = l
		}
	}
	return high, low
}

func trailingAvgVolume(s *types.PriceSeries, n int) float64 {
	start := s.Len() - n
	if start < 0 {
		start = 0
	}
	var total float64
	for i := start; i < s.Len(); i++ {
		total += s.Bar(i).Volume.InexactFloat64()
	}
	return total / float64(s.Len()-start)
}

// trendOf reads the close against the short and long averages. With both
// present, price above a rising stack is bullish and below a falling
// stack bearish; with only the short average the close alone decides.
func trendOf(price float64, sma20, sma50 *float64) Trend {
	switch {
	case sma20 == nil:
		return TrendNeutral
	case sma50 == nil:
		if price > *sma20 {
			return TrendBullish
		}
		if price < *sma20 {
			return TrendBearish
		}
		return TrendNeutral
	case price > *sma20 && *sma20 > *sma50:
		return TrendBullish
	case price < *sma20 && *sma20 < *sma50:
		return TrendBearish
	default:
		return TrendNeutral
	}
}

func lastNonNeutral(signals []types.Signal) *types.Signal {
	for i := len(signals) - 1; i >= 0; i-- {
		if signals[i].Kind != types.SignalNeutral {
			sig := signals[i]
			return &sig
		}
	}
	return nil
}
