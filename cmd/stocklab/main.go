package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"stocklab/internal/analysis"
	"stocklab/internal/config"
	"stocklab/internal/engine"
	"stocklab/internal/indicator"
	"stocklab/internal/marketdata"
	"stocklab/internal/repository"
	"stocklab/internal/strategy"
	"stocklab/pkg/logger"
	"stocklab/types"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	if err := run(context.Background(), cfg); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	interval, err := cfg.IntervalValue()
	if err != nil {
		return err
	}
	capital, err := cfg.CapitalAmount()
	if err != nil {
		return err
	}
	policy, err := cfg.VWAPPolicy()
	if err != nil {
		return err
	}
	start, end, err := cfg.Range(time.Now())
	if err != nil {
		return err
	}

	src, cleanup, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("loading bars",
		zap.String("ticker", cfg.Ticker),
		zap.String("interval", string(interval)),
		zap.Time("start", start),
		zap.Time("end", end),
		zap.String("source", cfg.Source.Type))

	series, err := marketdata.Load(ctx, src, cfg.Ticker, interval, start, end)
	if err != nil {
		return err
	}
	logger.Info("series loaded", zap.Int("bars", series.Len()))

	strats := make([]engine.Strategy, 0, len(cfg.Strategies))
	for _, sc := range cfg.Strategies {
		strat, err := strategy.New(sc.Name, sc.Params())
		if err != nil {
			return err
		}
		strats = append(strats, strat)
	}

	eng, err := engine.New(engine.Config{
		InitialCapital: capital,
		ShowProgress:   cfg.Progress && len(strats) == 1,
	})
	if err != nil {
		return err
	}

	started := time.Now()
	results, err := eng.RunAll(ctx, series, strats)
	if err != nil {
		return err
	}
	logger.Info("backtests complete",
		zap.Int("strategies", len(results)),
		zap.Duration("took", time.Since(started)))

	for i, res := range results {
		if i > 0 {
			fmt.Println()
		}
		engine.PrintReport(res)
	}

	sum := analysis.Summarize(series, results[0].Signals, policy)
	if cfg.Output.Dir != "" {
		if err := writeExports(cfg.Output.Dir, series, policy, results, sum); err != nil {
			return err
		}
	}
	return printSummaryJSON(sum)
}

func openSource(ctx context.Context, cfg *config.Config) (marketdata.Source, func(), error) {
	switch cfg.Source.Type {
	case config.SourceCSV:
		return marketdata.NewCSVSource(cfg.Source.CSV.Dir), func() {}, nil
	case config.SourceBinance:
		b := cfg.Source.Binance
		return marketdata.NewBinanceSource(b.APIKey, b.APISecret), func() {}, nil
	case config.SourcePostgres:
		db, err := repository.NewDatabase(ctx, cfg.Source.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		return marketdata.NewPostgresSource(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("source type %q: %w", cfg.Source.Type, config.ErrInvalid)
	}
}

func writeExports(dir string, series *types.PriceSeries, policy indicator.ResetPolicy, results []*engine.Result, sum analysis.Summary) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	ticker := strings.ToUpper(series.Ticker())

	for _, res := range results {
		base := filepath.Join(dir, fmt.Sprintf("%s_%s", ticker, fileSafe(res.Strategy)))
		if err := engine.WriteTradesCSVFile(base+"_trades.csv", res.Trades); err != nil {
			return err
		}
		if err := engine.WriteEquityCSVFile(base+"_equity.csv", res.Equity, res.BuyHold); err != nil {
			return err
		}
		logger.Info("exports written", zap.String("strategy", res.Strategy), zap.String("prefix", base))
	}

	frame := analysis.BuildFrame(series, policy)
	if err := frame.WriteCSVFile(filepath.Join(dir, ticker+"_frame.csv")); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, ticker+"_summary.json"), data, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func printSummaryJSON(sum analysis.Summary) error {
	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// fileSafe flattens a strategy display name into a filename fragment.
func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, name)
}
