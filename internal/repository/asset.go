package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"stocklab/types"
)

// GetAssetByTicker retrieves a types.Asset by its ticker.
func (db *Database) GetAssetByTicker(ctx context.Context, ticker string) (*types.Asset, error) {
	asset, err := db.assets.GetAssetByTicker(ctx, ticker)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ticker %s: %w", ticker, ErrAssetNotFound)
		}
		return nil, err
	}
	return &asset, nil
}

func (q *queries) GetAssetByTicker(ctx context.Context, ticker string) (types.Asset, error) {
	const query = `
		SELECT id, ticker, name, type, created_at, modified_at
		FROM assets
		WHERE ticker = $1`

	var asset types.Asset
	err := q.conn.QueryRow(ctx, query, ticker).Scan(
		&asset.Id,
		&asset.Ticker,
		&asset.Name,
		&asset.Type,
		&asset.CreatedAt,
		&asset.ModifiedAt,
	)
	return asset, err
}
