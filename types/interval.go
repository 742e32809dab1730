package types

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownInterval = errors.New("unknown interval")

// Interval names the bar duration in exchange notation, so data sources can
// pass it through unmapped.
type Interval string

const (
	OneMinute      Interval = "1m"
	FiveMinutes    Interval = "5m"
	FifteenMinutes Interval = "15m"
	ThirtyMinutes  Interval = "30m"
	Hour           Interval = "1h"
	FourHours      Interval = "4h"
	Day            Interval = "1d"
	Week           Interval = "1w"
)

var IntervalToTime = map[Interval]time.Duration{
	OneMinute:      time.Minute,
	FiveMinutes:    time.Minute * 5,
	FifteenMinutes: time.Minute * 15,
	ThirtyMinutes:  time.Minute * 30,
	Hour:           time.Hour,
	FourHours:      time.Hour * 4,
	Day:            time.Hour * 24,
	Week:           time.Hour * 24 * 7,
}

// ParseInterval validates an interval string from config or a request.
func ParseInterval(s string) (Interval, error) {
	iv := Interval(s)
	if _, ok := IntervalToTime[iv]; !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownInterval)
	}
	return iv, nil
}
