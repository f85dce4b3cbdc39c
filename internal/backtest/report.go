package backtest

import (
	"fmt"
	"strings"

	"github.com/quantkit/alphabench/internal/core"
)

// GenerateReport renders a backtest result as a plain text report.
// Pure formatting, no additional logic.
func GenerateReport(r *core.BacktestResult) string {
	var b strings.Builder

	b.WriteString("=== Backtest Report ===\n")
	fmt.Fprintf(&b, "Run:        %s\n", r.ID)
	fmt.Fprintf(&b, "Period:     %s to %s (%s)\n",
		r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"), r.Frequency)
	fmt.Fprintf(&b, "Symbols:    %s\n", strings.Join(r.Symbols, ", "))

	if r.Failed() {
		fmt.Fprintf(&b, "\nRun failed: %s\n", r.Err)
		return b.String()
	}

	b.WriteString("\n--- Returns ---\n")
	fmt.Fprintf(&b, "Initial capital:    %12.2f\n", r.InitialCapital)
	fmt.Fprintf(&b, "Final value:        %12.2f\n", r.FinalValue)
	fmt.Fprintf(&b, "Total return:       %11.2f%%\n", r.Stats.TotalReturn*100)
	fmt.Fprintf(&b, "Annualized return:  %11.2f%%\n", r.Stats.AnnualizedReturn*100)

	b.WriteString("\n--- Risk ---\n")
	fmt.Fprintf(&b, "Volatility:         %11.2f%%\n", r.Stats.Volatility*100)
	fmt.Fprintf(&b, "Sharpe ratio:       %12.2f\n", r.Stats.SharpeRatio)
	fmt.Fprintf(&b, "Sortino ratio:      %12.2f\n", r.Stats.SortinoRatio)
	fmt.Fprintf(&b, "Max drawdown:       %11.2f%%\n", r.Stats.MaxDrawdown*100)
	fmt.Fprintf(&b, "Calmar ratio:       %12.2f\n", r.Stats.CalmarRatio)

	b.WriteString("\n--- Trades ---\n")
	fmt.Fprintf(&b, "Total trades:       %12d\n", r.TradeStats.TotalTrades)
	fmt.Fprintf(&b, "Buys / Sells:       %6d / %4d\n", r.TradeStats.Buys, r.TradeStats.Sells)
	fmt.Fprintf(&b, "Win rate:           %11.2f%%\n", r.TradeStats.WinRate)
	fmt.Fprintf(&b, "Average exposure:   %11.2f%%\n", r.AvgExposure*100)

	if r.Benchmark != nil {
		b.WriteString("\n--- Benchmark ---\n")
		fmt.Fprintf(&b, "Instrument:         %12s\n", r.Benchmark.Symbol)
		fmt.Fprintf(&b, "Benchmark return:   %11.2f%%\n", r.Benchmark.Stats.AnnualizedReturn*100)
		fmt.Fprintf(&b, "Alpha:              %11.2f%%\n", r.Benchmark.Alpha*100)
	}

	return b.String()
}
