// Package marketdata loads OHLCV bars from the configured source. Sources
// return plain bar slices; Load funnels every one of them through series
// validation so the engine only ever sees well-formed input.
package marketdata

import (
	"context"
	"time"

	"stocklab/internal/repository"
	"stocklab/types"
)

// Source yields the bars of one instrument over the half-open range
// [start, end), oldest first.
type Source interface {
	Bars(ctx context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Bar, error)
}

// Load fetches from src and validates the result into a PriceSeries.
func Load(ctx context.Context, src Source, ticker string, interval types.Interval, start, end time.Time) (*types.PriceSeries, error) {
	bars, err := src.Bars(ctx, ticker, interval, start, end)
	if err != nil {
		return nil, err
	}
	return types.NewPriceSeries(ticker, bars)
}

type barRepository interface {
	GetAssetByTicker(ctx context.Context, ticker string) (*types.Asset, error)
	GetBars(ctx context.Context, assetId int, interval types.Interval, start, end time.Time) ([]types.Bar, error)
}

// PostgresSource serves bars out of the candle repository.
type PostgresSource struct {
	repo barRepository
}

func NewPostgresSource(db *repository.Database) *PostgresSource {
	return &PostgresSource{repo: db}
}

func (p *PostgresSource) Bars(ctx context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Bar, error) {
	asset, err := p.repo.GetAssetByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return p.repo.GetBars(ctx, asset.Id, interval, start, end)
}
