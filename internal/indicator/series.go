// Package indicator transforms a price series into derived series. Every
// function is pure: it reads the source once, allocates one value array per
// indicator and holds no state between calls. Outputs align to a suffix of
// the source bars through a start offset, so callers index them with the
// same bar indexes they use on the series itself.
package indicator

import (
	"errors"
	"fmt"
)

var ErrInsufficientData = errors.New("insufficient data")

// Series is an indicator output. Values[0] belongs to source index Start;
// earlier indexes fall inside the warm-up window and have no value.
type Series struct {
	Start  int       `json:"start"`
	Values []float64 `json:"values"`
}

func (s Series) Len() int { return len(s.Values) }

// At returns the value at source index i and whether it is defined.
func (s Series) At(i int) (float64, bool) {
	j := i - s.Start
	if j < 0 || j >= len(s.Values) {
		return 0, false
	}
	return s.Values[j], true
}

// Last returns the most recent value and whether the series has any.
func (s Series) Last() (float64, bool) {
	if len(s.Values) == 0 {
		return 0, false
	}
	return s.Values[len(s.Values)-1], true
}

func errShort(name string, need, got int) error {
	return fmt.Errorf("%s needs %d bars, series has %d: %w", name, need, got, ErrInsufficientData)
}

func errPeriod(name string, period int) error {
	return fmt.Errorf("%s: period %d must be positive", name, period)
}
