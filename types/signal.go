package types

import (
	"time"
)

type SignalKind string

const (
	SignalBullish SignalKind = "BULLISH"
	SignalBearish SignalKind = "BEARISH"
	SignalNeutral SignalKind = "NEUTRAL"
)

// Signal is one directional reading at a bar. Strategies emit exactly one
// per bar; Reason is set on non-neutral signals only.
type Signal struct {
	Kind   SignalKind `json:"kind"`
	Time   time.Time  `json:"time"`
	Reason string     `json:"reason,omitempty"`
}

func NewSignal(kind SignalKind, at time.Time, reason string) Signal {
	return Signal{
		Kind:   kind,
		Time:   at,
		Reason: reason,
	}
}
