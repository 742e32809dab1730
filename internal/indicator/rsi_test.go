package indicator

import (
	"errors"
	"testing"

	"github.com/markcheno/go-talib"
)

func TestRSIBounds(t *testing.T) {
	closes := randomWalk(300, 19)
	s := seriesOf(t, closes)

	got, err := RSI(s, 14)
	if err != nil {
		t.Fatalf("RSI() error = %v", err)
	}
	if got.Start != 14 {
		t.Fatalf("RSI Start = %d, want 14", got.Start)
	}
	if got.Len() != 300-14 {
		t.Fatalf("RSI Len = %d, want %d", got.Len(), 300-14)
	}
	for j, v := range got.Values {
		if v < 0 || v > 100 {
			t.Fatalf("RSI value %d = %v outside [0, 100]", j, v)
		}
	}
}

func TestRSILossFreeWindowPinsTo100(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
	}{
		{
			name:   "constant closes",
			closes: []float64{50, 50, 50, 50, 50, 50, 50, 50},
		},
		{
			name:   "strictly rising closes",
			closes: []float64{10, 11, 12, 13, 14, 15, 16, 17},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seriesOf(t, tt.closes)
			got, err := RSI(s, 5)
			if err != nil {
				t.Fatalf("RSI() error = %v", err)
			}
			for j, v := range got.Values {
				if v != 100 {
					t.Fatalf("RSI value %d = %v, want 100 with no losses", j, v)
				}
			}
		})
	}
}

func TestRSIStrictlyFallingGoesToZero(t *testing.T) {
	closes := []float64{100, 99, 98, 97, 96, 95, 94, 93}
	s := seriesOf(t, closes)

	got, err := RSI(s, 5)
	if err != nil {
		t.Fatalf("RSI() error = %v", err)
	}
	for j, v := range got.Values {
		if v != 0 {
			t.Fatalf("RSI value %d = %v, want 0 with no gains", j, v)
		}
	}
}

func TestRSIMatchesTalib(t *testing.T) {
	closes := randomWalk(200, 23)
	s := seriesOf(t, closes)

	got, err := RSI(s, 14)
	if err != nil {
		t.Fatalf("RSI() error = %v", err)
	}
	ref := talib.Rsi(closes, 14)

	for back := 0; back < 80; back++ {
		mine := got.Values[len(got.Values)-1-back]
		theirs := ref[len(ref)-1-back]
		if !approx(mine, theirs, 1e-6) {
			t.Fatalf("RSI tail %d = %v, talib %v", back, mine, theirs)
		}
	}
}

func TestRSIInsufficientData(t *testing.T) {
	s := seriesOf(t, []float64{10, 11, 12, 13, 14})

	// Five bars yield four changes, one short of the five the period needs.
	if _, err := RSI(s, 5); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("RSI(5) on 5 bars error = %v, want ErrInsufficientData", err)
	}
	if _, err := RSI(s, 4); err != nil {
		t.Fatalf("RSI(4) on 5 bars error = %v", err)
	}
}
