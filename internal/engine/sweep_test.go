package engine

import (
	"context"
	"errors"
	"testing"

	"stocklab/types"
)

func TestRunAllKeepsStrategyOrder(t *testing.T) {
	series := testSeries(t, []float64{10, 11, 12, 13, 14, 15})
	strats := []Strategy{
		&scriptStrategy{name: "first", kinds: neutralKinds(6)},
		&scriptStrategy{name: "second", kinds: neutralKinds(6)},
		&scriptStrategy{name: "third", kinds: neutralKinds(6)},
	}

	eng := testEngine(t, "1000")
	results, err := eng.RunAll(context.Background(), series, strats)
	if err != nil {
		t.Fatalf("RunAll() error = %v", err)
	}
	if len(results) != len(strats) {
		t.Fatalf("RunAll() returned %d results, want %d", len(results), len(strats))
	}
	for i, res := range results {
		if res == nil {
			t.Fatalf("results[%d] is nil", i)
		}
		if res.Strategy != strats[i].Name() {
			t.Fatalf("results[%d] ran %q, want %q", i, res.Strategy, strats[i].Name())
		}
	}
}

func TestRunAllPropagatesFailure(t *testing.T) {
	series := testSeries(t, []float64{10, 11, 12})
	boom := errors.New("boom")
	strats := []Strategy{
		&scriptStrategy{name: "ok", kinds: neutralKinds(3)},
		&scriptStrategy{name: "bad", err: boom},
	}

	eng := testEngine(t, "1000")
	if _, err := eng.RunAll(context.Background(), series, strats); !errors.Is(err, boom) {
		t.Fatalf("RunAll() error = %v, want wrapped boom", err)
	}
}

func TestRunAllHonorsCancelledContext(t *testing.T) {
	series := testSeries(t, []float64{10, 11, 12})
	strats := []Strategy{&scriptStrategy{name: "ok", kinds: neutralKinds(3)}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := testEngine(t, "1000")
	if _, err := eng.RunAll(ctx, series, strats); !errors.Is(err, context.Canceled) {
		t.Fatalf("RunAll() error = %v, want context.Canceled", err)
	}
}

func neutralKinds(n int) []types.SignalKind {
	out := make([]types.SignalKind, n)
	for i := range out {
		out[i] = types.SignalNeutral
	}
	return out
}
