package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"stocklab/internal/indicator"
	"stocklab/types"
)

// Frame bundles a series with the standard indicator columns for chart
// consumers. Indicator columns keep their offset alignment: a column's
// first value lands on bar index Start. A column whose warm-up exceeds
// the series stays empty.
type Frame struct {
	Ticker  string      `json:"ticker"`
	Times   []time.Time `json:"times"`
	Opens   []float64   `json:"opens"`
	Highs   []float64   `json:"highs"`
	Lows    []float64   `json:"lows"`
	Closes  []float64   `json:"closes"`
	Volumes []float64   `json:"volumes"`

	SMA20     indicator.Series          `json:"sma20"`
	SMA50     indicator.Series          `json:"sma50"`
	EMA20     indicator.Series          `json:"ema20"`
	RSI14     indicator.Series          `json:"rsi14"`
	MACD      indicator.MACDSeries      `json:"macd"`
	Bollinger indicator.BollingerSeries `json:"bollinger"`
	VWAP      indicator.Series          `json:"vwap"`
}

// BuildFrame computes every standard column over the series. Like
// Summarize it never fails; short series just produce empty columns.
func BuildFrame(s *types.PriceSeries, policy indicator.ResetPolicy) *Frame {
	f := &Frame{
		Ticker:  s.Ticker(),
		Times:   s.Times(),
		Opens:   s.Opens(),
		Highs:   s.Highs(),
		Lows:    s.Lows(),
		Closes:  s.Closes(),
		Volumes: s.Volumes(),
	}

	if sma, err := indicator.SMA(s, fastSMAPeriod); err == nil {
		f.SMA20 = sma
	}
	if sma, err := indicator.SMA(s, slowSMAPeriod); err == nil {
		f.SMA50 = sma
	}
	if ema, err := indicator.EMA(s, emaPeriod); err == nil {
		f.EMA20 = ema
	}
	if rsi, err := indicator.RSI(s, rsiPeriod); err == nil {
		f.RSI14 = rsi
	}
	if macd, err := indicator.MACD(s, macdFast, macdSlow, macdSignal); err == nil {
		f.MACD = macd
	}
	if boll, err := indicator.Bollinger(s, bollPeriod, bollWidth); err == nil {
		f.Bollinger = boll
	}
	if vwap, err := indicator.VWAP(s, policy); err == nil {
		f.VWAP = vwap
	}
	return f
}

// WriteCSVFile writes the frame to a CSV file at the given path.
func (f *Frame) WriteCSVFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame file: %w", err)
	}
	defer file.Close()

	return f.WriteCSV(file)
}

// WriteCSV writes one row per bar. Warm-up cells are left empty so the
// columns stay aligned for spreadsheet import.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"time",
		"open",
		"high",
		"low",
		"close",
		"volume",
		"sma20",
		"sma50",
		"ema20",
		"rsi14",
		"macd",
		"macd_signal",
		"macd_hist",
		"boll_upper",
		"boll_middle",
		"boll_lower",
		"vwap",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range f.Times {
		record := []string{
			f.Times[i].Format(time.RFC3339),
			formatFloat(f.Opens[i]),
			formatFloat(f.Highs[i]),
			formatFloat(f.Lows[i]),
			formatFloat(f.Closes[i]),
			formatFloat(f.Volumes[i]),
			cell(f.SMA20, i),
			cell(f.SMA50, i),
			cell(f.EMA20, i),
			cell(f.RSI14, i),
			cell(f.MACD.Line, i),
			cell(f.MACD.Signal, i),
			cell(f.MACD.Hist, i),
			cell(f.Bollinger.Upper, i),
			cell(f.Bollinger.Middle, i),
			cell(f.Bollinger.Lower, i),
			cell(f.VWAP, i),
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

func cell(s indicator.Series, i int) string {
	v, ok := s.At(i)
	if !ok {
		return ""
	}
	return formatFloat(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
