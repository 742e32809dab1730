package marketdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/jpillora/backoff"
	"github.com/shopspring/decimal"

	"stocklab/types"
)

const (
	// maxKlines is the exchange's per-request limit; longer ranges page.
	maxKlines   = 1000
	maxAttempts = 3
)

// klineFetcher is the single exchange call the source depends on.
type klineFetcher interface {
	Klines(ctx context.Context, symbol, interval string, start, end int64, limit int) ([]*binance.Kline, error)
}

type binanceClient struct {
	c *binance.Client
}

func (b *binanceClient) Klines(ctx context.Context, symbol, interval string, start, end int64, limit int) ([]*binance.Kline, error) {
	svc := b.c.NewKlinesService().Symbol(symbol).Interval(interval).Limit(limit)
	if start > 0 {
		svc = svc.StartTime(start)
	}
	if end > 0 {
		svc = svc.EndTime(end)
	}
	return svc.Do(ctx)
}

// BinanceSource pages klines out of the public Binance REST API. Interval
// names already use exchange notation so they pass through unmapped.
type BinanceSource struct {
	fetcher    klineFetcher
	backoffMin time.Duration
	backoffMax time.Duration
}

// NewBinanceSource builds a source over the REST client. Klines are
// public data, so empty credentials work.
func NewBinanceSource(apiKey, apiSecret string) *BinanceSource {
	return &BinanceSource{
		fetcher:    &binanceClient{c: binance.NewClient(apiKey, apiSecret)},
		backoffMin: 500 * time.Millisecond,
		backoffMax: 5 * time.Second,
	}
}

func (b *BinanceSource) Bars(ctx context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Bar, error) {
	symbol := strings.ToUpper(ticker)
	from := start.UnixMilli()
	// The exchange treats endTime as inclusive; back off one millisecond
	// to keep the range half-open.
	until := end.UnixMilli() - 1

	var bars []types.Bar
	for {
		klines, err := b.fetchChunk(ctx, symbol, string(interval), from, until)
		if err != nil {
			return nil, err
		}
		if len(klines) == 0 {
			break
		}
		for _, k := range klines {
			bar, err := barFromKline(k)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", symbol, interval, err)
			}
			bars = append(bars, bar)
		}
		if len(klines) < maxKlines {
			break
		}
		from = klines[len(klines)-1].OpenTime + 1
	}
	return bars, nil
}

func (b *BinanceSource) fetchChunk(ctx context.Context, symbol, interval string, start, end int64) ([]*binance.Kline, error) {
	wait := &backoff.Backoff{
		Min:    b.backoffMin,
		Max:    b.backoffMax,
		Factor: 2,
		Jitter: true,
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(wait.Duration()):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		klines, err := b.fetcher.Klines(ctx, symbol, interval, start, end, maxKlines)
		if err == nil {
			return klines, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("fetch %s %s klines: %w", symbol, interval, lastErr)
}

func barFromKline(k *binance.Kline) (types.Bar, error) {
	bar := types.Bar{Timestamp: time.UnixMilli(k.OpenTime).UTC()}

	var err error
	if bar.Open, err = decimal.NewFromString(k.Open); err != nil {
		return types.Bar{}, fmt.Errorf("parse open %q: %w", k.Open, err)
	}
	if bar.High, err = decimal.NewFromString(k.High); err != nil {
		return types.Bar{}, fmt.Errorf("parse high %q: %w", k.High, err)
	}
	if bar.Low, err = decimal.NewFromString(k.Low); err != nil {
		return types.Bar{}, fmt.Errorf("parse low %q: %w", k.Low, err)
	}
	if bar.Close, err = decimal.NewFromString(k.Close); err != nil {
		return types.Bar{}, fmt.Errorf("parse close %q: %w", k.Close, err)
	}
	if bar.Volume, err = decimal.NewFromString(k.Volume); err != nil {
		return types.Bar{}, fmt.Errorf("parse volume %q: %w", k.Volume, err)
	}
	return bar, nil
}
