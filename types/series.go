package types

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoBars = errors.New("no bars")

// PriceSeries is an immutable, chronologically ordered bar sequence for a
// single instrument. Construction validates every bar and the ordering
// invariant; float64 views of each column are materialized once so the
// indicator math never re-extracts them.
type PriceSeries struct {
	ticker string
	bars   []Bar

	times   []time.Time
	opens   []float64
	highs   []float64
	lows    []float64
	closes  []float64
	volumes []float64
}

// NewPriceSeries copies bars, validates them and checks that timestamps are
// strictly increasing. The input slice stays untouched.
func NewPriceSeries(ticker string, bars []Bar) (*PriceSeries, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("price series %q: %w", ticker, ErrNoBars)
	}

	own := make([]Bar, len(bars))
	copy(own, bars)

	s := &PriceSeries{
		ticker:  ticker,
		bars:    own,
		times:   make([]time.Time, len(own)),
		opens:   make([]float64, len(own)),
		highs:   make([]float64, len(own)),
		lows:    make([]float64, len(own)),
		closes:  make([]float64, len(own)),
		volumes: make([]float64, len(own)),
	}
	for i, b := range own {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("bar %d: %w", i, err)
		}
		if i > 0 && !b.Timestamp.After(own[i-1].Timestamp) {
			return nil, fmt.Errorf("bar %d timestamp %s not after %s: %w",
				i, b.Timestamp.Format(time.RFC3339), own[i-1].Timestamp.Format(time.RFC3339), ErrInvalidBar)
		}
		s.times[i] = b.Timestamp
		s.opens[i] = b.Open.InexactFloat64()
		s.highs[i] = b.High.InexactFloat64()
		s.lows[i] = b.Low.InexactFloat64()
		s.closes[i] = b.Close.InexactFloat64()
		s.volumes[i] = b.Volume.InexactFloat64()
	}
	return s, nil
}

func (s *PriceSeries) Ticker() string { return s.ticker }

func (s *PriceSeries) Len() int { return len(s.bars) }

func (s *PriceSeries) Bar(i int) Bar { return s.bars[i] }

func (s *PriceSeries) First() Bar { return s.bars[0] }

func (s *PriceSeries) Last() Bar { return s.bars[len(s.bars)-1] }

// Bars returns a copy of the underlying bars.
func (s *PriceSeries) Bars() []Bar {
	out := make([]Bar, len(s.bars))
	copy(out, s.bars)
	return out
}

// The column views below are shared, not copied. Callers treat them as
// read-only.

func (s *PriceSeries) Times() []time.Time { return s.times }

func (s *PriceSeries) Opens() []float64 { return s.opens }

func (s *PriceSeries) Highs() []float64 { return s.highs }

func (s *PriceSeries) Lows() []float64 { return s.lows }

func (s *PriceSeries) Closes() []float64 { return s.closes }

func (s *PriceSeries) Volumes() []float64 { return s.volumes }
