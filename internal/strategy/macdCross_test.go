package strategy

import (
	"errors"
	"math"
	"testing"

	"stocklab/internal/indicator"
	"stocklab/types"
)

func TestMACDCrossMatchesDerivedCrossings(t *testing.T) {
	// A slow price wave forces the MACD line back and forth through its
	// signal line; re-derive the crossings and compare bar by bar.
	closes := make([]float64, 200)
	for i := range closes {
		closes[i] = 100 + 15*math.Sin(float64(i)/12)
	}
	s := seriesOf(t, closes)

	strat, err := NewMACDCross(12, 26, 9)
	if err != nil {
		t.Fatalf("NewMACDCross() error = %v", err)
	}
	signals, err := strat.Signals(s)
	if err != nil {
		t.Fatalf("Signals() error = %v", err)
	}

	macd, err := indicator.MACD(s, 12, 26, 9)
	if err != nil {
		t.Fatalf("MACD() error = %v", err)
	}

	sawBullish, sawBearish := false, false
	for i := range closes {
		want := types.SignalNeutral
		if linePrev, ok := macd.Line.At(i - 1); ok {
			if sigPrev, ok := macd.Signal.At(i - 1); ok {
				lineCur, _ := macd.Line.At(i)
				sigCur, _ := macd.Signal.At(i)
				switch {
				case linePrev <= sigPrev && lineCur > sigCur:
					want = types.SignalBullish
					sawBullish = true
				case linePrev >= sigPrev && lineCur < sigCur:
					want = types.SignalBearish
					sawBearish = true
				}
			}
		}
		if signals[i].Kind != want {
			t.Fatalf("signal %d = %s, want %s", i, signals[i].Kind, want)
		}
	}
	if !sawBullish || !sawBearish {
		t.Fatalf("fixture produced bullish=%v bearish=%v, want both", sawBullish, sawBearish)
	}
}

func TestMACDCrossFlatSeriesStaysNeutral(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 80
	}
	s := seriesOf(t, closes)

	strat, err := NewMACDCross(12, 26, 9)
	if err != nil {
		t.Fatalf("NewMACDCross() error = %v", err)
	}
	signals, err := strat.Signals(s)
	if err != nil {
		t.Fatalf("Signals() error = %v", err)
	}
	expectKinds(t, signals, nil)
}

func TestMACDCrossInsufficientData(t *testing.T) {
	s := seriesOf(t, []float64{10, 11, 12, 13})

	strat, err := NewMACDCross(12, 26, 9)
	if err != nil {
		t.Fatalf("NewMACDCross() error = %v", err)
	}
	if _, err := strat.Signals(s); !errors.Is(err, indicator.ErrInsufficientData) {
		t.Fatalf("Signals() error = %v, want ErrInsufficientData", err)
	}
}
