package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"stocklab/types"
)

// RunAll backtests every strategy against the same series, one worker per
// strategy. Runs share nothing mutable, so they execute in parallel; the
// results slice keeps the strategy order. The first failure cancels the
// remaining runs. Callers normally disable ShowProgress here, since
// concurrent bars interleave on one terminal.
func (e *Engine) RunAll(ctx context.Context, series *types.PriceSeries, strats []Strategy) ([]*Result, error) {
	results := make([]*Result, len(strats))

	g, ctx := errgroup.WithContext(ctx)
	for i, strat := range strats {
		i, strat := i, strat
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.Run(series, strat)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
