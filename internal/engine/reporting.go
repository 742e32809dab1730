package engine

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"stocklab/types"
)

type Report struct {
	// Meta / period info
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	TotalPeriod time.Duration `json:"totalPeriod"`
	TotalTrades int           `json:"totalTrades"`

	// Absolute performance
	FinalEquity decimal.Decimal `json:"finalEquity"`
	NetProfit   decimal.Decimal `json:"netProfit"`
	TotalReturn decimal.Decimal `json:"totalReturn"`
	CAGR        decimal.Decimal `json:"cagr"`

	// Trade-level distribution metrics
	WinRate      decimal.Decimal `json:"winRate"`
	AvgWin       decimal.Decimal `json:"avgWin"`
	AvgLoss      decimal.Decimal `json:"avgLoss"`
	ProfitFactor decimal.Decimal `json:"profitFactor"`
	BestTrade    decimal.Decimal `json:"bestTrade"`
	WorstTrade   decimal.Decimal `json:"worstTrade"`

	// Drawdown & loss streak metrics
	MaxDrawdown          decimal.Decimal `json:"maxDrawdown"`
	MaxDrawdownAmount    decimal.Decimal `json:"maxDrawdownAmount"`
	MaxDrawdownDays      time.Duration   `json:"maxDrawdownDays"`
	MaxConsecutiveLosses int             `json:"maxConsecutiveLosses"`

	// Risk-adjusted metrics
	SharpeRatio decimal.Decimal `json:"sharpeRatio"`

	// Benchmark comparison
	BenchFinalEquity decimal.Decimal `json:"benchFinalEquity"`
	BenchReturn      decimal.Decimal `json:"benchReturn"`
	BenchSharpe      decimal.Decimal `json:"benchSharpe"`
	BenchMaxDrawdown decimal.Decimal `json:"benchMaxDrawdown"`
	Outperformance   decimal.Decimal `json:"outperformance"`
}

// Analyze derives the full report from a completed run. It is a pure
// function of its inputs; the divide guards below return zero instead of
// failing so a degenerate run (no trades, flat equity) still reports.
func Analyze(equity, benchmark types.EquityCurve, trades []types.Trade, initialCapital decimal.Decimal) *Report {
	report := &Report{TotalTrades: len(trades)}
	if len(equity) > 0 {
		report.StartDate = equity[0].Time
		report.EndDate = equity[len(equity)-1].Time
		report.TotalPeriod = report.EndDate.Sub(report.StartDate)
	}

	var wg sync.WaitGroup
	wg.Add(9)
	go func() {
		report.FinalEquity, report.NetProfit, report.TotalReturn = calcAbsoluteMetrics(equity, initialCapital, &wg)
	}()
	go func() {
		report.CAGR = calcCAGR(equity, &wg)
	}()
	go func() {
		report.WinRate, report.AvgWin, report.AvgLoss, report.ProfitFactor = calcTradeMetrics(trades, &wg)
	}()
	go func() {
		report.BestTrade, report.WorstTrade = calcBestWorstTrade(trades, &wg)
	}()
	go func() {
		report.MaxDrawdown, report.MaxDrawdownAmount, report.MaxDrawdownDays = calcDrawdownMetrics(equity, &wg)
	}()
	go func() {
		report.MaxConsecutiveLosses = calcMaxConsecutiveLosses(trades, &wg)
	}()
	go func() {
		report.SharpeRatio = calcSharpeRatio(equity, &wg)
	}()
	go func() {
		report.BenchSharpe = calcSharpeRatio(benchmark, &wg)
	}()
	go func() {
		report.BenchMaxDrawdown, _, _ = calcDrawdownMetrics(benchmark, &wg)
	}()
	wg.Wait()

	report.BenchFinalEquity = benchmark.Final()
	report.BenchReturn = curveReturn(benchmark, initialCapital)
	report.Outperformance = report.TotalReturn.Sub(report.BenchReturn)

	return report
}

func calcAbsoluteMetrics(equity types.EquityCurve, capital decimal.Decimal, wg *sync.WaitGroup) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	defer wg.Done()

	if len(equity) == 0 {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}

	finalEquity := equity.Final()
	netProfit := finalEquity.Sub(capital)
	return finalEquity, netProfit, curveReturn(equity, capital)
}

func calcCAGR(equity types.EquityCurve, wg *sync.WaitGroup) decimal.Decimal {
	defer wg.Done()

	if len(equity) < 2 {
		return decimal.Zero
	}

	startVal := equity[0].Equity
	endVal := equity[len(equity)-1].Equity
	if !startVal.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}

	// time difference in years (using 365.25 days to account for leap years)
	duration := equity[len(equity)-1].Time.Sub(equity[0].Time)
	if duration <= 0 {
		return decimal.Zero
	}
	years := duration.Hours() / (24.0 * 365.25)

	ratio := endVal.Div(startVal)
	if !ratio.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}

	cagrFloat := math.Pow(ratio.InexactFloat64(), 1.0/years) - 1.0

	return decimal.NewFromFloat(cagrFloat)
}

func calcTradeMetrics(trades []types.Trade, wg *sync.WaitGroup) (decimal.Decimal, decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	defer wg.Done()

	sumWins := decimal.Zero
	sumLosses := decimal.Zero // store absolute loss amounts
	winCount := 0
	lossCount := 0

	for _, tr := range trades {
		switch {
		case tr.PnL.GreaterThan(decimal.Zero):
			sumWins = sumWins.Add(tr.PnL)
			winCount++
		case tr.PnL.LessThan(decimal.Zero):
			sumLosses = sumLosses.Add(tr.PnL.Abs())
			lossCount++
		}
	}

	winRate := decimal.Zero
	if len(trades) > 0 {
		wins := 0
		for _, tr := range trades {
			if tr.Win() {
				wins++
			}
		}
		winRate = decimal.NewFromInt(int64(wins)).Div(decimal.NewFromInt(int64(len(trades))))
	}

	avgWin := decimal.Zero
	avgLoss := decimal.Zero
	if winCount > 0 {
		avgWin = sumWins.Div(decimal.NewFromInt(int64(winCount)))
	}
	if lossCount > 0 {
		avgLoss = sumLosses.Div(decimal.NewFromInt(int64(lossCount)))
	}

	// Profit factor is gross wins over gross losses; with no losing trade
	// it is undefined and reported as zero.
	profitFactor := decimal.Zero
	if sumLosses.GreaterThan(decimal.Zero) {
		profitFactor = sumWins.Div(sumLosses)
	}

	return winRate, avgWin, avgLoss, profitFactor
}

func calcBestWorstTrade(trades []types.Trade, wg *sync.WaitGroup) (decimal.Decimal, decimal.Decimal) {
	defer wg.Done()

	best := decimal.Zero
	worst := decimal.Zero
	for i, tr := range trades {
		if i == 0 {
			best, worst = tr.Return, tr.Return
			continue
		}
		if tr.Return.GreaterThan(best) {
			best = tr.Return
		}
		if tr.Return.LessThan(worst) {
			worst = tr.Return
		}
	}
	return best, worst
}

// calcDrawdownMetrics finds the worst peak-to-trough episode measured as a
// fraction of the peak, and reports that episode's dollar depth and its
// duration from the peak to the trough bar.
func calcDrawdownMetrics(equity types.EquityCurve, wg *sync.WaitGroup) (decimal.Decimal, decimal.Decimal, time.Duration) {
	defer wg.Done()

	if len(equity) == 0 {
		return decimal.Zero, decimal.Zero, 0
	}

	peak := decimal.Zero
	var peakTime time.Time

	maxDD := decimal.Zero
	maxDDAmount := decimal.Zero
	var maxDDDuration time.Duration

	for i, point := range equity {
		if i == 0 || point.Equity.GreaterThan(peak) {
			peak = point.Equity
			peakTime = point.Time
		}

		if peak.GreaterThan(decimal.Zero) {
			dd := peak.Sub(point.Equity)
			frac := dd.Div(peak)

			if frac.GreaterThan(maxDD) {
				maxDD = frac
				maxDDAmount = dd
				maxDDDuration = point.Time.Sub(peakTime)
			}
		}
	}

	return maxDD, maxDDAmount, maxDDDuration
}

func calcMaxConsecutiveLosses(trades []types.Trade, wg *sync.WaitGroup) int {
	defer wg.Done()

	maxLossStreak := 0
	currentStreak := 0

	for _, tr := range trades {
		if tr.PnL.LessThan(decimal.Zero) {
			currentStreak++
			if currentStreak > maxLossStreak {
				maxLossStreak = currentStreak
			}
		} else {
			currentStreak = 0
		}
	}

	return maxLossStreak
}

func calcSharpeRatio(equity types.EquityCurve, wg *sync.WaitGroup) decimal.Decimal {
	defer wg.Done()

	returns := equity.Returns()
	if len(returns) < 2 {
		// Need at least 2 returns to compute stddev
		return decimal.Zero
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	// Sample standard deviation of per-bar returns
	var varianceSum float64
	for _, r := range returns {
		diff := r - mean
		varianceSum += diff * diff
	}
	std := math.Sqrt(varianceSum / float64(len(returns)-1))
	if std == 0 {
		return decimal.Zero
	}

	// Per-bar Sharpe, annualized by sqrt(252 trading days)
	return decimal.NewFromFloat(mean / std * math.Sqrt(252.0))
}

func PrintReport(res *Result) {
	report := res.Report

	fmt.Println("===== Trading Report =====")
	fmt.Printf("Ticker:                %s\n", res.Ticker)
	fmt.Printf("Strategy:              %s\n", res.Strategy)
	fmt.Printf("Start Date:            %s\n", report.StartDate.Format("2006-01-02"))
	fmt.Printf("Total Period:          %d days\n", report.TotalPeriod/(24*time.Hour))
	fmt.Printf("Total Trades:          %d\n", report.TotalTrades)

	fmt.Println("\n-- Absolute Performance --")
	fmt.Printf("Initial Capital:       %s\n", res.InitialCapital)
	fmt.Printf("Final Equity:          %s\n", report.FinalEquity)
	fmt.Printf("Net Profit:            %s\n", report.NetProfit)
	fmt.Printf("Total Return:          %s\n", report.TotalReturn)
	fmt.Printf("CAGR:                  %s\n", report.CAGR)

	fmt.Println("\n-- Trade-Level Metrics --")
	fmt.Printf("Win Rate:              %s\n", report.WinRate)
	fmt.Printf("Avg Win:               %s\n", report.AvgWin)
	fmt.Printf("Avg Loss:              %s\n", report.AvgLoss)
	fmt.Printf("Profit Factor:         %s\n", report.ProfitFactor)
	fmt.Printf("Best Trade:            %s\n", report.BestTrade)
	fmt.Printf("Worst Trade:           %s\n", report.WorstTrade)

	fmt.Println("\n-- Drawdown Metrics --")
	fmt.Printf("Max Drawdown:          %s\n", report.MaxDrawdown)
	fmt.Printf("Max Drawdown Amount:   %s\n", report.MaxDrawdownAmount)
	fmt.Printf("Max Drawdown Days:     %v\n", report.MaxDrawdownDays)
	fmt.Printf("Max Consecutive Losses:%d\n", report.MaxConsecutiveLosses)

	fmt.Println("\n-- Risk-Adjusted Metrics --")
	fmt.Printf("Sharpe Ratio:          %s\n", report.SharpeRatio)

	fmt.Println("\n-- Benchmark: Buy & Hold --")
	fmt.Printf("Final Equity:          %s\n", report.BenchFinalEquity)
	fmt.Printf("Return:                %s\n", report.BenchReturn)
	fmt.Printf("Sharpe Ratio:          %s\n", report.BenchSharpe)
	fmt.Printf("Max Drawdown:          %s\n", report.BenchMaxDrawdown)
	fmt.Printf("Outperformance:        %s\n", report.Outperformance)

	if res.Open != nil {
		fmt.Println("\n-- Open Position --")
		fmt.Printf("Entered:               %s @ %s\n", res.Open.EntryTime.Format("2006-01-02"), res.Open.EntryPrice)
		fmt.Printf("Shares:                %s\n", res.Open.Shares)
		fmt.Printf("Market Value:          %s\n", report.FinalEquity)
	}

	fmt.Println("==========================")
}

// Helper functions
func curveReturn(curve types.EquityCurve, capital decimal.Decimal) decimal.Decimal {
	if len(curve) == 0 || !capital.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return curve.Final().Div(capital).Sub(decimal.NewFromInt(1))
}
