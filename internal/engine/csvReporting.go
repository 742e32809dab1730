package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"stocklab/types"
)

// WriteTradesCSVFile writes the realized trade log to a CSV file at the
// given path.
func WriteTradesCSVFile(path string, trades []types.Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trades file: %w", err)
	}
	defer f.Close()

	return WriteTradesCSV(f, trades)
}

// WriteTradesCSV writes trades to any io.Writer as CSV.
// You can pass os.Stdout for debugging, or a file.
func WriteTradesCSV(w io.Writer, trades []types.Trade) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"trade_id",
		"ticker",
		"entry_time", // RFC3339
		"entry_price",
		"exit_time", // RFC3339
		"exit_price",
		"shares",
		"return",
		"pnl",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, t := range trades {
		record := []string{
			fmt.Sprintf("%d", i),
			t.Ticker,
			t.EntryTime.Format(time.RFC3339),
			t.EntryPrice.String(),
			t.ExitTime.Format(time.RFC3339),
			t.ExitPrice.String(),
			t.Shares.String(),
			t.Return.String(),
			t.PnL.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	// Check for any error from the csv.Writer
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

// WriteEquityCSVFile writes the strategy and benchmark curves side by side
// to a CSV file at the given path.
func WriteEquityCSVFile(path string, equity, buyHold types.EquityCurve) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create equity file: %w", err)
	}
	defer f.Close()

	return WriteEquityCSV(f, equity, buyHold)
}

// WriteEquityCSV writes the equity curve to any io.Writer as CSV. The
// buy-and-hold column is omitted when the benchmark curve is empty and
// both curves share the bar timeline otherwise.
func WriteEquityCSV(w io.Writer, equity, buyHold types.EquityCurve) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"time", "equity"}
	withBench := len(buyHold) == len(equity)
	if withBench {
		header = append(header, "buy_hold")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, point := range equity {
		record := []string{
			point.Time.Format(time.RFC3339),
			point.Equity.String(),
		}
		if withBench {
			record = append(record, buyHold[i].Equity.String())
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
