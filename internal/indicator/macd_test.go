package indicator

import (
	"errors"
	"testing"
)

func TestMACDOffsets(t *testing.T) {
	closes := randomWalk(120, 31)
	s := seriesOf(t, closes)

	got, err := MACD(s, 12, 26, 9)
	if err != nil {
		t.Fatalf("MACD() error = %v", err)
	}
	if got.Line.Start != 25 {
		t.Fatalf("Line Start = %d, want 25", got.Line.Start)
	}
	if got.Signal.Start != 33 || got.Hist.Start != 33 {
		t.Fatalf("Signal, Hist Start = %d, %d, want 33, 33", got.Signal.Start, got.Hist.Start)
	}
	if got.Line.Len() != 120-25 {
		t.Fatalf("Line Len = %d, want %d", got.Line.Len(), 120-25)
	}
	if got.Signal.Len() != 120-33 {
		t.Fatalf("Signal Len = %d, want %d", got.Signal.Len(), 120-33)
	}
}

func TestMACDLineIsEMADifference(t *testing.T) {
	closes := randomWalk(150, 37)
	s := seriesOf(t, closes)

	got, err := MACD(s, 12, 26, 9)
	if err != nil {
		t.Fatalf("MACD() error = %v", err)
	}
	emaFast, err := EMA(s, 12)
	if err != nil {
		t.Fatalf("EMA(12) error = %v", err)
	}
	emaSlow, err := EMA(s, 26)
	if err != nil {
		t.Fatalf("EMA(26) error = %v", err)
	}

	for i := got.Line.Start; i < s.Len(); i++ {
		line, _ := got.Line.At(i)
		f, _ := emaFast.At(i)
		sl, _ := emaSlow.At(i)
		if !approx(line, f-sl, 1e-9) {
			t.Fatalf("Line at %d = %v, want %v", i, line, f-sl)
		}
	}
}

func TestMACDHistogramIsLineMinusSignal(t *testing.T) {
	closes := randomWalk(150, 41)
	s := seriesOf(t, closes)

	got, err := MACD(s, 12, 26, 9)
	if err != nil {
		t.Fatalf("MACD() error = %v", err)
	}
	for i := got.Hist.Start; i < s.Len(); i++ {
		h, _ := got.Hist.At(i)
		line, _ := got.Line.At(i)
		sig, _ := got.Signal.At(i)
		if !approx(h, line-sig, 1e-9) {
			t.Fatalf("Hist at %d = %v, want %v", i, h, line-sig)
		}
	}
}

func TestMACDSignalSeed(t *testing.T) {
	closes := randomWalk(90, 43)
	s := seriesOf(t, closes)

	got, err := MACD(s, 12, 26, 9)
	if err != nil {
		t.Fatalf("MACD() error = %v", err)
	}

	// The signal seed is the simple average of the first nine line values.
	var sum float64
	for _, v := range got.Line.Values[:9] {
		sum += v
	}
	if want := sum / 9; !approx(got.Signal.Values[0], want, 1e-9) {
		t.Fatalf("Signal seed = %v, want %v", got.Signal.Values[0], want)
	}
}

func TestMACDErrors(t *testing.T) {
	short := seriesOf(t, randomWalk(30, 47))
	if _, err := MACD(short, 12, 26, 9); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("MACD on 30 bars error = %v, want ErrInsufficientData", err)
	}

	ok := seriesOf(t, randomWalk(34, 47))
	if _, err := MACD(ok, 12, 26, 9); err != nil {
		t.Fatalf("MACD on 34 bars error = %v", err)
	}

	if _, err := MACD(ok, 26, 12, 9); err == nil {
		t.Fatal("MACD must reject fast >= slow")
	}
	if _, err := MACD(ok, 0, 26, 9); err == nil {
		t.Fatal("MACD must reject non-positive periods")
	}
}
