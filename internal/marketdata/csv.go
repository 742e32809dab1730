package marketdata

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stocklab/types"
)

var ErrMissingColumn = errors.New("missing column")

var barColumns = []string{"time", "open", "high", "low", "close", "volume"}

// CSVSource reads bar files from a directory, one file per ticker and
// interval named <TICKER>_<interval>.csv. The layout is the same one the
// frame exporter writes, so an exported frame can be loaded back; columns
// are matched by header name and extra columns are ignored.
type CSVSource struct {
	dir string
}

func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

func (c *CSVSource) Bars(_ context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Bar, error) {
	path := filepath.Join(c.dir, fmt.Sprintf("%s_%s.csv", strings.ToUpper(ticker), interval))
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readBars(f, start, end)
}

func readBars(r io.Reader, start, end time.Time) ([]types.Bar, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range barColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var bars []types.Bar
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		bar, err := parseBar(record, col)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if bar.Timestamp.Before(start) {
			continue
		}
		if !end.IsZero() && !bar.Timestamp.Before(end) {
			continue
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func parseBar(record []string, col map[string]int) (types.Bar, error) {
	ts, err := parseTime(record[col["time"]])
	if err != nil {
		return types.Bar{}, err
	}

	bar := types.Bar{Timestamp: ts}
	for _, field := range []struct {
		name string
		dst  *decimal.Decimal
	}{
		{"open", &bar.Open},
		{"high", &bar.High},
		{"low", &bar.Low},
		{"close", &bar.Close},
		{"volume", &bar.Volume},
	} {
		v, err := decimal.NewFromString(record[col[field.name]])
		if err != nil {
			return types.Bar{}, fmt.Errorf("parse %s: %w", field.name, err)
		}
		*field.dst = v
	}
	return bar, nil
}

// parseTime accepts the exporter's RFC3339 stamps as well as the bare
// dates daily bar files usually carry.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", s)
}
