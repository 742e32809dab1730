package indicator

import (
	"errors"
	"testing"

	"github.com/markcheno/go-talib"
)

func TestSMAAgainstNaiveReference(t *testing.T) {
	closes := randomWalk(260, 7)
	s := seriesOf(t, closes)

	got, err := SMA(s, 200)
	if err != nil {
		t.Fatalf("SMA() error = %v", err)
	}
	if got.Start != 199 {
		t.Fatalf("SMA Start = %d, want 199", got.Start)
	}
	if got.Len() != 260-199 {
		t.Fatalf("SMA Len = %d, want %d", got.Len(), 260-199)
	}

	for j, v := range got.Values {
		var sum float64
		for _, c := range closes[j : j+200] {
			sum += c
		}
		want := sum / 200
		if !approx(v, want, 1e-9) {
			t.Fatalf("SMA value %d = %v, want %v", j, v, want)
		}
	}
}

func TestSMAKnownWindow(t *testing.T) {
	s := seriesOf(t, []float64{10, 11, 12, 11, 10})

	got, err := SMA(s, 3)
	if err != nil {
		t.Fatalf("SMA() error = %v", err)
	}
	want := []float64{11, 34.0 / 3.0, 11}
	if got.Start != 2 || got.Len() != 3 {
		t.Fatalf("SMA Start, Len = %d, %d, want 2, 3", got.Start, got.Len())
	}
	for j, w := range want {
		if !approx(got.Values[j], w, 1e-12) {
			t.Fatalf("SMA value %d = %v, want %v", j, got.Values[j], w)
		}
	}

	// Source-index addressing: index 1 is still warming up, index 3 holds
	// the second value.
	if _, ok := got.At(1); ok {
		t.Fatal("At(1) defined inside warm-up window")
	}
	if v, ok := got.At(3); !ok || !approx(v, 34.0/3.0, 1e-12) {
		t.Fatalf("At(3) = %v, %v", v, ok)
	}
}

func TestSMAMatchesTalib(t *testing.T) {
	closes := randomWalk(120, 11)
	s := seriesOf(t, closes)

	got, err := SMA(s, 20)
	if err != nil {
		t.Fatalf("SMA() error = %v", err)
	}
	ref := talib.Sma(closes, 20)

	// Compare from the tail so the check does not depend on the reference
	// library's warm-up padding convention.
	for back := 0; back < 50; back++ {
		mine := got.Values[len(got.Values)-1-back]
		theirs := ref[len(ref)-1-back]
		if !approx(mine, theirs, 1e-8) {
			t.Fatalf("SMA tail %d = %v, talib %v", back, mine, theirs)
		}
	}
}

func TestEMASeededBySMA(t *testing.T) {
	closes := randomWalk(80, 3)
	s := seriesOf(t, closes)

	ema, err := EMA(s, 20)
	if err != nil {
		t.Fatalf("EMA() error = %v", err)
	}
	sma, err := SMA(s, 20)
	if err != nil {
		t.Fatalf("SMA() error = %v", err)
	}
	if ema.Start != 19 {
		t.Fatalf("EMA Start = %d, want 19", ema.Start)
	}
	// The seed is the simple average of the first window, bit for bit.
	if ema.Values[0] != sma.Values[0] {
		t.Fatalf("EMA seed = %v, SMA = %v", ema.Values[0], sma.Values[0])
	}
}

func TestEMARecurrence(t *testing.T) {
	s := seriesOf(t, []float64{1, 2, 3, 4, 5})

	got, err := EMA(s, 3)
	if err != nil {
		t.Fatalf("EMA() error = %v", err)
	}
	// seed = 2, k = 1/2: [2, 3, 4]
	want := []float64{2, 3, 4}
	for j, w := range want {
		if !approx(got.Values[j], w, 1e-12) {
			t.Fatalf("EMA value %d = %v, want %v", j, got.Values[j], w)
		}
	}
}

func TestEMAMatchesTalib(t *testing.T) {
	closes := randomWalk(150, 5)
	s := seriesOf(t, closes)

	got, err := EMA(s, 12)
	if err != nil {
		t.Fatalf("EMA() error = %v", err)
	}
	ref := talib.Ema(closes, 12)

	for back := 0; back < 60; back++ {
		mine := got.Values[len(got.Values)-1-back]
		theirs := ref[len(ref)-1-back]
		if !approx(mine, theirs, 1e-8) {
			t.Fatalf("EMA tail %d = %v, talib %v", back, mine, theirs)
		}
	}
}

func TestMovingAverageErrors(t *testing.T) {
	s := seriesOf(t, []float64{10, 11, 12})

	if _, err := SMA(s, 4); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("SMA(4) on 3 bars error = %v, want ErrInsufficientData", err)
	}
	if _, err := EMA(s, 5); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("EMA(5) on 3 bars error = %v, want ErrInsufficientData", err)
	}
	if _, err := SMA(s, 0); err == nil {
		t.Fatal("SMA(0) must reject the period")
	}
	if _, err := EMA(s, -1); err == nil {
		t.Fatal("EMA(-1) must reject the period")
	}
}
