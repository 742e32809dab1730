// Package engine simulates a single-position long-only trading account
// over one price series, then derives performance metrics from the
// resulting trade log and equity curve. The simulation is deterministic:
// identical series, signals and capital reproduce identical output.
package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stocklab/types"
)

var (
	ErrInvalidCapital = errors.New("initial capital must be positive")
	ErrSignalMismatch = errors.New("signal count does not match bar count")
)

// Strategy is the slice of the strategy package the engine consumes. The
// returned signals are aligned 1:1 with the series bars.
type Strategy interface {
	Name() string
	Signals(s *types.PriceSeries) ([]types.Signal, error)
}

type Config struct {
	InitialCapital decimal.Decimal
	ShowProgress   bool
}

type Engine struct {
	cfg Config
}

func New(cfg Config) (*Engine, error) {
	if !cfg.InitialCapital.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%s: %w", cfg.InitialCapital, ErrInvalidCapital)
	}
	return &Engine{cfg: cfg}, nil
}

// Run evaluates the strategy over the series, walks the bars once and
// returns the full result with its report already computed. A warm-up
// shortfall in the strategy's indicators surfaces here before any
// simulation state exists.
func (e *Engine) Run(series *types.PriceSeries, strat Strategy) (*Result, error) {
	signals, err := strat.Signals(series)
	if err != nil {
		return nil, fmt.Errorf("%s on %s: %w", strat.Name(), series.Ticker(), err)
	}
	if len(signals) != series.Len() {
		return nil, fmt.Errorf("%s on %s emitted %d signals for %d bars: %w",
			strat.Name(), series.Ticker(), len(signals), series.Len(), ErrSignalMismatch)
	}

	b := newBacktester(series, signals, e.cfg.InitialCapital, e.cfg.ShowProgress)
	b.run()

	buyHold := buyHoldCurve(series, e.cfg.InitialCapital)

	return &Result{
		ID:             uuid.New(),
		Ticker:         series.Ticker(),
		Strategy:       strat.Name(),
		InitialCapital: e.cfg.InitialCapital,
		Signals:        signals,
		Trades:         b.trades,
		Equity:         b.equity,
		BuyHold:        buyHold,
		Open:           b.open,
		Report:         Analyze(b.equity, buyHold, b.trades, e.cfg.InitialCapital),
	}, nil
}

// buyHoldCurve is the benchmark: the whole capital bought at the first
// close and held. A zero first close means nothing can be bought, so the
// benchmark stays flat at capital.
func buyHoldCurve(series *types.PriceSeries, capital decimal.Decimal) types.EquityCurve {
	out := make(types.EquityCurve, 0, series.Len())
	first := series.First().Close

	if first.IsZero() {
		for _, t := range series.Times() {
			out = append(out, types.EquityPoint{Time: t, Equity: capital})
		}
		return out
	}

	shares := capital.Div(first)
	for i := 0; i < series.Len(); i++ {
		bar := series.Bar(i)
		out = append(out, types.EquityPoint{Time: bar.Timestamp, Equity: shares.Mul(bar.Close)})
	}
	return out
}
