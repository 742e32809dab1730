package repository

import (
	"context"
	"fmt"
	"time"

	"stocklab/types"
)

var bucketToInterval = map[types.Interval]string{
	types.OneMinute:      "1 minute",
	types.FiveMinutes:    "5 minutes",
	types.FifteenMinutes: "15 minutes",
	types.ThirtyMinutes:  "30 minutes",
	types.Hour:           "1 hour",
	types.FourHours:      "4 hours",
	types.Day:            "1 day",
	types.Week:           "1 week",
}

// GetBars aggregates the stored candles of one asset to the requested
// interval over the half-open range [start, end), ordered by bucket time.
func (db *Database) GetBars(ctx context.Context, assetId int, interval types.Interval, start, end time.Time) ([]types.Bar, error) {
	bucket, ok := bucketToInterval[interval]
	if !ok {
		return nil, fmt.Errorf("%s: %w", interval, ErrIntervalNotSupported)
	}
	bars, err := db.candles.GetAggregates(ctx, bucket, assetId, start, end)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("asset %d %s: %w", assetId, interval, ErrNoBars)
	}
	return bars, nil
}

func (q *queries) GetAggregates(ctx context.Context, bucket string, assetId int, start, end time.Time) ([]types.Bar, error) {
	const query = `
		SELECT time_bucket($1::interval, timestamp) AS bucket,
		       first(open, timestamp) AS open,
		       max(high) AS high,
		       min(low) AS low,
		       last(close, timestamp) AS close,
		       sum(volume) AS volume
		FROM candles
		WHERE asset_id = $2 AND timestamp >= $3 AND timestamp < $4
		GROUP BY bucket
		ORDER BY bucket`

	rows, err := q.conn.Query(ctx, query, bucket, assetId, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bars []types.Bar
	for rows.Next() {
		var bar types.Bar
		if err := rows.Scan(&bar.Timestamp, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}
	return bars, rows.Err()
}
