package backtest

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantkit/alphabench/internal/core"
	"github.com/quantkit/alphabench/internal/scoring"
)

var epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// syntheticProvider serves a deterministic exponential price series
// for every known symbol. Symbols can be cut off after a date to
// simulate data loss.
type syntheticProvider struct {
	symbols     map[string]float64 // symbol -> daily growth rate
	cutoff      map[string]time.Time
	fetchErrors int
}

func (p *syntheticProvider) FetchHistory(symbol string, start, end time.Time, interval string) ([]core.PriceBar, error) {
	growth, ok := p.symbols[symbol]
	if !ok {
		p.fetchErrors++
		return nil, core.WrapError(core.ErrNoData, errors.New(symbol))
	}
	if cut, hasCut := p.cutoff[symbol]; hasCut && end.After(cut) {
		p.fetchErrors++
		return nil, core.WrapError(core.ErrCollectorFailed, errors.New("source went dark"))
	}

	var bars []core.PriceBar
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days := d.Sub(epoch).Hours() / 24
		price := 100 * math.Pow(1+growth, days)
		bars = append(bars, core.PriceBar{
			Symbol: symbol,
			Date:   d,
			Open:   price,
			High:   price * 1.005,
			Low:    price * 0.995,
			Close:  price,
			Volume: 50000,
		})
	}
	return bars, nil
}

func newTestSimulator(t *testing.T, provider HistoryProvider, cfg Config) *Simulator {
	t.Helper()
	engine, err := scoring.NewEngine(scoring.DefaultConfig(), nil)
	require.NoError(t, err)
	return NewSimulator(provider, engine, cfg, nil)
}

func TestSimulator_RisingSingleSymbol(t *testing.T) {
	provider := &syntheticProvider{symbols: map[string]float64{"AAPL": 0.003}}

	cfg := DefaultConfig()
	cfg.MinEntryScore = 0 // buy on any score
	cfg.Benchmark = ""

	sim := newTestSimulator(t, provider, cfg)
	start := epoch.AddDate(1, 0, 0)
	end := start.AddDate(1, 0, 0)

	result := sim.Run(context.Background(), []string{"AAPL"}, start, end)
	require.False(t, result.Failed(), "unexpected error: %s", result.Err)

	// Exactly one BUY at the first rebalance date, never sold
	require.Len(t, result.Trades, 1)
	buy := result.Trades[0]
	assert.Equal(t, core.TradeBuy, buy.Action)
	assert.Equal(t, "AAPL", buy.Symbol)
	assert.True(t, buy.Date.Equal(start), "buy at %v, want first rebalance %v", buy.Date, start)

	// Rising price means the portfolio ends above initial capital
	assert.Greater(t, result.FinalValue, result.InitialCapital)
	assert.Equal(t, 0, result.TradeStats.Sells)
}

func TestSimulator_SnapshotAccountingInvariant(t *testing.T) {
	provider := &syntheticProvider{symbols: map[string]float64{
		"AAPL": 0.003,
		"MSFT": 0.002,
	}}

	cfg := DefaultConfig()
	cfg.MinEntryScore = 0
	cfg.Frequency = FreqWeekly
	cfg.Benchmark = ""

	sim := newTestSimulator(t, provider, cfg)
	start := epoch.AddDate(1, 0, 0)
	result := sim.Run(context.Background(), []string{"MSFT", "AAPL"}, start, start.AddDate(0, 3, 0))
	require.False(t, result.Failed(), "unexpected error: %s", result.Err)

	require.NotEmpty(t, result.Snapshots)
	for _, snap := range result.Snapshots {
		assert.InDelta(t, snap.Value, snap.Cash+snap.Invested, 1e-6,
			"snapshot at %v violates value = cash + invested", snap.Date)
	}

	// Symbols are reported sorted regardless of request order
	assert.Equal(t, []string{"AAPL", "MSFT"}, result.Symbols)
}

func TestSimulator_ExitsWhenScoreUnavailable(t *testing.T) {
	start := epoch.AddDate(1, 0, 0)
	cut := start.AddDate(0, 2, 15)
	provider := &syntheticProvider{
		symbols: map[string]float64{"AAPL": 0.003},
		cutoff:  map[string]time.Time{"AAPL": cut},
	}

	cfg := DefaultConfig()
	cfg.MinEntryScore = 0
	cfg.Benchmark = ""

	sim := newTestSimulator(t, provider, cfg)
	result := sim.Run(context.Background(), []string{"AAPL"}, start, start.AddDate(0, 6, 0))
	require.False(t, result.Failed(), "unexpected error: %s", result.Err)

	// The position opened while data was available is exited on the
	// first date the symbol cannot be scored.
	var buys, sells int64
	var sellReason string
	for _, tr := range result.Trades {
		switch tr.Action {
		case core.TradeBuy:
			buys += tr.Shares
		case core.TradeSell:
			sells += tr.Shares
			sellReason = tr.Reason
		}
	}
	require.NotZero(t, buys)
	assert.Equal(t, buys, sells, "all bought shares should be sold after data loss")
	assert.Equal(t, "no score available", sellReason)
}

func TestSimulator_SellsNeverExceedBuys(t *testing.T) {
	provider := &syntheticProvider{symbols: map[string]float64{
		"AAPL": 0.003,
		"MSFT": -0.002, // falling symbol never qualifies for entry
	}}

	cfg := DefaultConfig()
	cfg.MinEntryScore = 0
	cfg.Benchmark = ""

	sim := newTestSimulator(t, provider, cfg)
	start := epoch.AddDate(1, 0, 0)
	result := sim.Run(context.Background(), []string{"AAPL", "MSFT"}, start, start.AddDate(1, 0, 0))
	require.False(t, result.Failed(), "unexpected error: %s", result.Err)

	bought := make(map[string]int64)
	sold := make(map[string]int64)
	for _, tr := range result.Trades {
		if tr.Action == core.TradeBuy {
			bought[tr.Symbol] += tr.Shares
		} else {
			sold[tr.Symbol] += tr.Shares
		}
	}
	for symbol, s := range sold {
		assert.LessOrEqual(t, s, bought[symbol], "symbol %s oversold", symbol)
	}
}

func TestSimulator_StartAfterEnd(t *testing.T) {
	provider := &syntheticProvider{symbols: map[string]float64{"AAPL": 0.003}}
	sim := newTestSimulator(t, provider, DefaultConfig())

	start := epoch.AddDate(2, 0, 0)
	result := sim.Run(context.Background(), []string{"AAPL"}, start, start.AddDate(0, 0, -30))

	require.True(t, result.Failed())
	assert.Empty(t, result.Snapshots, "no rebalance dates may be processed")
	assert.Empty(t, result.Trades)
}

func TestSimulator_NoSymbols(t *testing.T) {
	provider := &syntheticProvider{symbols: map[string]float64{}}
	sim := newTestSimulator(t, provider, DefaultConfig())

	start := epoch.AddDate(1, 0, 0)
	result := sim.Run(context.Background(), nil, start, start.AddDate(0, 6, 0))
	require.True(t, result.Failed())
}

func TestSimulator_NoDataAtAll(t *testing.T) {
	provider := &syntheticProvider{symbols: map[string]float64{}} // every fetch fails
	cfg := DefaultConfig()
	cfg.Benchmark = ""

	sim := newTestSimulator(t, provider, cfg)
	start := epoch.AddDate(1, 0, 0)
	result := sim.Run(context.Background(), []string{"AAPL", "MSFT"}, start, start.AddDate(0, 6, 0))

	require.True(t, result.Failed())
	assert.Contains(t, result.Err, "no data")
}

func TestSimulator_NoCapital(t *testing.T) {
	provider := &syntheticProvider{symbols: map[string]float64{"AAPL": 0.003}}
	cfg := DefaultConfig()
	cfg.InitialCapital = 0

	sim := newTestSimulator(t, provider, cfg)
	start := epoch.AddDate(1, 0, 0)
	result := sim.Run(context.Background(), []string{"AAPL"}, start, start.AddDate(0, 6, 0))
	require.True(t, result.Failed())
}

func TestSimulator_BenchmarkAttached(t *testing.T) {
	provider := &syntheticProvider{symbols: map[string]float64{
		"AAPL": 0.003,
		"SPY":  0.001,
	}}

	cfg := DefaultConfig()
	cfg.MinEntryScore = 0
	cfg.Benchmark = "SPY"

	sim := newTestSimulator(t, provider, cfg)
	start := epoch.AddDate(1, 0, 0)
	result := sim.Run(context.Background(), []string{"AAPL"}, start, start.AddDate(1, 0, 0))
	require.False(t, result.Failed(), "unexpected error: %s", result.Err)

	require.NotNil(t, result.Benchmark)
	assert.Equal(t, "SPY", result.Benchmark.Symbol)
	assert.InDelta(t,
		result.Stats.AnnualizedReturn-result.Benchmark.Stats.AnnualizedReturn,
		result.Benchmark.Alpha, 1e-9)
}

func TestComparator_NoData(t *testing.T) {
	provider := &syntheticProvider{symbols: map[string]float64{}}
	c := NewComparator(provider, nil)

	_, err := c.Compare("SPY", epoch, epoch.AddDate(1, 0, 0), 0.10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrBenchmarkNoData))
}
