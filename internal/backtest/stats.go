package backtest

import (
	"math"

	"github.com/quantkit/alphabench/internal/core"
)

const tradingDaysPerYear = 252

// CalculateStats computes return and risk statistics from a snapshot
// series. Every arithmetic edge case (single point, zero variance,
// zero drawdown) returns 0 rather than NaN or infinity.
func CalculateStats(snapshots []core.PortfolioSnapshot) core.PerformanceStats {
	if len(snapshots) < 2 {
		return core.PerformanceStats{}
	}

	first, last := snapshots[0], snapshots[len(snapshots)-1]
	var stats core.PerformanceStats

	if first.Value > 0 {
		stats.TotalReturn = last.Value/first.Value - 1
	}

	days := last.Date.Sub(first.Date).Hours() / 24
	if days > 0 {
		stats.AnnualizedReturn = math.Pow(1+stats.TotalReturn, 365.25/days) - 1
	}

	returns := periodReturns(snapshots)
	sd := stdev(returns)
	stats.Volatility = sd * math.Sqrt(tradingDaysPerYear)

	if sd > 0 {
		stats.SharpeRatio = math.Sqrt(tradingDaysPerYear) * mean(returns) / sd
	}

	var negative []float64
	for _, r := range returns {
		if r < 0 {
			negative = append(negative, r)
		}
	}
	if downside := stdev(negative); downside > 0 {
		stats.SortinoRatio = math.Sqrt(tradingDaysPerYear) * mean(returns) / downside
	}

	stats.MaxDrawdown = maxDrawdown(returns)
	if stats.MaxDrawdown != 0 {
		stats.CalmarRatio = stats.AnnualizedReturn / math.Abs(stats.MaxDrawdown)
	}

	return stats
}

// CalculateTradeStats summarizes the trade log. Win/loss pairing
// matches BUY[i] with SELL[i] per symbol in chronological order, a
// positional simplification rather than FIFO lot accounting.
func CalculateTradeStats(trades []core.Trade) core.TradeStats {
	stats := core.TradeStats{TotalTrades: len(trades)}

	buys := make(map[string][]core.Trade)
	sells := make(map[string][]core.Trade)
	for _, t := range trades {
		switch t.Action {
		case core.TradeBuy:
			stats.Buys++
			buys[t.Symbol] = append(buys[t.Symbol], t)
		case core.TradeSell:
			stats.Sells++
			sells[t.Symbol] = append(sells[t.Symbol], t)
		}
	}

	for symbol, symbolSells := range sells {
		symbolBuys := buys[symbol]
		for i, sell := range symbolSells {
			if i >= len(symbolBuys) {
				break
			}
			if sell.Price > symbolBuys[i].Price {
				stats.WinningTrades++
			} else {
				stats.LosingTrades++
			}
		}
	}

	closed := stats.WinningTrades + stats.LosingTrades
	if closed > 0 {
		stats.WinRate = float64(stats.WinningTrades) / float64(closed) * 100
	}

	return stats
}

// AverageExposure is the mean invested fraction of portfolio value
func AverageExposure(snapshots []core.PortfolioSnapshot) float64 {
	if len(snapshots) == 0 {
		return 0
	}
	var invested, value float64
	for _, s := range snapshots {
		invested += s.Invested
		value += s.Value
	}
	if value == 0 {
		return 0
	}
	return invested / value
}

// periodReturns computes returns between consecutive snapshots
func periodReturns(snapshots []core.PortfolioSnapshot) []float64 {
	var returns []float64
	for i := 1; i < len(snapshots); i++ {
		prev := snapshots[i-1].Value
		if prev > 0 {
			returns = append(returns, snapshots[i].Value/prev-1)
		}
	}
	return returns
}

// maxDrawdown is the most negative cumulative decline from a peak
func maxDrawdown(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	var maxDD float64
	cumulative := 1.0
	peak := 1.0

	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		if dd := cumulative/peak - 1; dd < maxDD {
			maxDD = dd
		}
	}

	return maxDD
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var variance float64
	for _, v := range values {
		variance += (v - m) * (v - m)
	}
	return math.Sqrt(variance / float64(len(values)-1))
}
