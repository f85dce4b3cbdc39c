package backtest

import (
	"fmt"
	"time"

	"github.com/quantkit/alphabench/internal/core"
	"go.uber.org/zap"
)

// Comparator computes relative performance against a reference
// instrument over the same period.
type Comparator struct {
	provider HistoryProvider
	logger   *zap.Logger
}

// NewComparator creates a benchmark comparator
func NewComparator(provider HistoryProvider, logger *zap.Logger) *Comparator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparator{provider: provider, logger: logger}
}

// Compare fetches the benchmark's close series over the given range,
// applies the same statistics as the strategy series, and derives
// alpha as the difference in annualized returns.
func (c *Comparator) Compare(symbol string, start, end time.Time, strategyAnnualized float64) (*core.BenchmarkComparison, error) {
	bars, err := c.provider.FetchHistory(symbol, start, end, "1d")
	if err != nil {
		return nil, core.WrapError(core.ErrBenchmarkNoData, err)
	}
	if len(bars) == 0 {
		return nil, core.WrapError(core.ErrBenchmarkNoData, fmt.Errorf("symbol %s", symbol))
	}

	// Reuse the snapshot statistics by treating the close series as a
	// single-instrument portfolio.
	snapshots := make([]core.PortfolioSnapshot, 0, len(bars))
	for _, b := range bars {
		if b.Close <= 0 {
			continue
		}
		snapshots = append(snapshots, core.PortfolioSnapshot{
			Date:     b.Date,
			Value:    b.Close,
			Invested: b.Close,
		})
	}
	if len(snapshots) == 0 {
		return nil, core.WrapError(core.ErrBenchmarkNoData, fmt.Errorf("symbol %s: no usable closes", symbol))
	}

	stats := CalculateStats(snapshots)

	return &core.BenchmarkComparison{
		Symbol: symbol,
		Stats:  stats,
		Alpha:  strategyAnnualized - stats.AnnualizedReturn,
	}, nil
}
