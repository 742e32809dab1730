// Package config loads the run configuration from a yaml file. Defaults
// fill the gaps after unmarshalling and validation happens up front, so
// the rest of the program can trust the values it reads.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"stocklab/internal/indicator"
	"stocklab/internal/strategy"
	"stocklab/types"
)

var ErrInvalid = errors.New("invalid config")

const dateLayout = "2006-01-02"

// Data source types.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceBinance  = "binance"
)

type Config struct {
	Ticker    string `yaml:"ticker"`
	Interval  string `yaml:"interval"`
	Period    string `yaml:"period"`
	Start     string `yaml:"start"`
	End       string `yaml:"end"`
	Capital   string `yaml:"capital"`
	VWAPReset string `yaml:"vwap_reset"`
	LogLevel  string `yaml:"log_level"`
	Progress  bool   `yaml:"progress"`

	Source     SourceConfig     `yaml:"source"`
	Strategies []StrategyConfig `yaml:"strategies"`
	Output     OutputConfig     `yaml:"output"`
}

type SourceConfig struct {
	Type     string         `yaml:"type"`
	CSV      CSVConfig      `yaml:"csv"`
	Postgres PostgresConfig `yaml:"postgres"`
	Binance  BinanceConfig  `yaml:"binance"`
}

type CSVConfig struct {
	Dir string `yaml:"dir"`
}

type PostgresConfig struct {
	URL string `yaml:"url"`
}

type BinanceConfig struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
}

type StrategyConfig struct {
	Name       string  `yaml:"name"`
	Fast       int     `yaml:"fast"`
	Slow       int     `yaml:"slow"`
	Signal     int     `yaml:"signal"`
	Period     int     `yaml:"period"`
	Oversold   float64 `yaml:"oversold"`
	Overbought float64 `yaml:"overbought"`
}

// Params converts the yaml block into strategy parameters. Zero fields
// stay zero and fall back to the strategy's own defaults.
func (s StrategyConfig) Params() strategy.Params {
	return strategy.Params{
		Fast:       s.Fast,
		Slow:       s.Slow,
		Signal:     s.Signal,
		Period:     s.Period,
		Oversold:   s.Oversold,
		Overbought: s.Overbought,
	}
}

type OutputConfig struct {
	// Dir receives the csv and summary exports; empty disables them.
	Dir string `yaml:"dir"`
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Interval == "" {
		c.Interval = string(types.Day)
	}
	if c.Capital == "" {
		c.Capital = "10000"
	}
	if c.Period == "" && c.Start == "" {
		c.Period = "1y"
	}
	if c.VWAPReset == "" {
		c.VWAPReset = string(indicator.ResetSeries)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Source.Type == "" {
		c.Source.Type = SourceCSV
	}
	if c.Source.CSV.Dir == "" {
		c.Source.CSV.Dir = "."
	}
	if len(c.Strategies) == 0 {
		c.Strategies = []StrategyConfig{{Name: strategy.NameSMACross}}
	}
}

func (c *Config) validate() error {
	if c.Ticker == "" {
		return fmt.Errorf("ticker missing: %w", ErrInvalid)
	}
	if _, err := types.ParseInterval(c.Interval); err != nil {
		return fmt.Errorf("interval %q: %w", c.Interval, ErrInvalid)
	}
	capital, err := decimal.NewFromString(c.Capital)
	if err != nil || !capital.GreaterThan(decimal.Zero) {
		return fmt.Errorf("capital %q must be a positive amount: %w", c.Capital, ErrInvalid)
	}
	if _, err := indicator.ParseResetPolicy(c.VWAPReset); err != nil {
		return fmt.Errorf("vwap_reset %q: %w", c.VWAPReset, ErrInvalid)
	}
	switch c.Source.Type {
	case SourceCSV, SourcePostgres, SourceBinance:
	default:
		return fmt.Errorf("source type %q: %w", c.Source.Type, ErrInvalid)
	}
	if c.Source.Type == SourcePostgres && c.Source.Postgres.URL == "" {
		return fmt.Errorf("postgres url missing: %w", ErrInvalid)
	}
	if _, _, err := c.Range(time.Now()); err != nil {
		return err
	}
	for _, s := range c.Strategies {
		if s.Name == "" {
			return fmt.Errorf("strategy name missing: %w", ErrInvalid)
		}
	}
	return nil
}

// Range resolves the configured window against now. Explicit dates win
// over the period preset; an open end means now.
func (c *Config) Range(now time.Time) (start, end time.Time, err error) {
	if c.Start == "" {
		return periodRange(c.Period, now)
	}

	start, err = time.Parse(dateLayout, c.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start date %q: %w", c.Start, ErrInvalid)
	}
	end = now
	if c.End != "" {
		end, err = time.Parse(dateLayout, c.End)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end date %q: %w", c.End, ErrInvalid)
		}
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("empty range %s..%s: %w", c.Start, c.End, ErrInvalid)
	}
	return start, end, nil
}

func periodRange(period string, now time.Time) (time.Time, time.Time, error) {
	switch strings.ToLower(period) {
	case "1w":
		return now.AddDate(0, 0, -7), now, nil
	case "1m":
		return now.AddDate(0, -1, 0), now, nil
	case "3m":
		return now.AddDate(0, -3, 0), now, nil
	case "6m":
		return now.AddDate(0, -6, 0), now, nil
	case "1y":
		return now.AddDate(-1, 0, 0), now, nil
	case "5y":
		return now.AddDate(-5, 0, 0), now, nil
	case "ytd":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), now, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("period %q: %w", period, ErrInvalid)
	}
}

// CapitalAmount returns the starting cash as a decimal.
func (c *Config) CapitalAmount() (decimal.Decimal, error) {
	capital, err := decimal.NewFromString(c.Capital)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("capital %q: %w", c.Capital, ErrInvalid)
	}
	return capital, nil
}

func (c *Config) IntervalValue() (types.Interval, error) {
	return types.ParseInterval(c.Interval)
}

func (c *Config) VWAPPolicy() (indicator.ResetPolicy, error) {
	return indicator.ParseResetPolicy(c.VWAPReset)
}
