// Package backtest simulates how a portfolio following the scoring
// rule would have performed historically.
//
// The rebalance loop is strictly sequential: portfolio state at date N
// depends on the outcome at date N-1. Within one rebalance date the
// scoring pass fans out across workers, with a barrier before any
// accounting step touches portfolio state.
package backtest

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quantkit/alphabench/internal/core"
	"github.com/quantkit/alphabench/internal/indicator"
	"github.com/quantkit/alphabench/internal/metrics"
	"github.com/quantkit/alphabench/internal/scoring"
	"go.uber.org/zap"
)

// HistoryProvider supplies historical bars for the simulator
type HistoryProvider interface {
	FetchHistory(symbol string, start, end time.Time, interval string) ([]core.PriceBar, error)
}

// Config holds simulator parameters
type Config struct {
	InitialCapital  float64 `mapstructure:"initial_capital"`
	MaxPositions    int     `mapstructure:"max_positions"`
	PositionSizePct float64 `mapstructure:"position_size_pct"`
	MinEntryScore   float64 `mapstructure:"min_entry_score"`
	ExitScore       float64 `mapstructure:"exit_score"`
	CommissionPct   float64 `mapstructure:"commission_pct"`
	SlippagePct     float64 `mapstructure:"slippage_pct"`
	Frequency       string  `mapstructure:"frequency"`
	HistoryDays     int     `mapstructure:"history_days"`
	MinBars         int     `mapstructure:"min_bars"`
	Workers         int     `mapstructure:"workers"`
	Benchmark       string  `mapstructure:"benchmark"`
}

// DefaultConfig returns standard simulation parameters
func DefaultConfig() Config {
	return Config{
		InitialCapital:  100000,
		MaxPositions:    5,
		PositionSizePct: 0.20,
		MinEntryScore:   75,
		ExitScore:       40,
		CommissionPct:   0.001,
		SlippagePct:     0.001,
		Frequency:       FreqMonthly,
		HistoryDays:     365,
		MinBars:         100,
		Workers:         4,
		Benchmark:       "SPY",
	}
}

// Validate checks simulator parameters for errors.
func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("initial_capital must be positive, got %f", c.InitialCapital))
	}
	if c.MaxPositions < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("max_positions must be at least 1, got %d", c.MaxPositions))
	}
	if c.PositionSizePct <= 0 || c.PositionSizePct > 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("position_size_pct must be in (0, 1], got %f", c.PositionSizePct))
	}
	if c.CommissionPct < 0 || c.SlippagePct < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("commission_pct and slippage_pct cannot be negative"))
	}
	switch c.Frequency {
	case FreqDaily, FreqWeekly, FreqMonthly:
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown frequency %q", c.Frequency))
	}
	if c.Workers < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	return nil
}

// Simulator owns all portfolio state for a run. State is mutated only
// inside the rebalance step, never exposed for concurrent mutation.
type Simulator struct {
	provider HistoryProvider
	engine   *scoring.Engine
	cfg      Config
	logger   *zap.Logger
	registry *metrics.Registry
}

// NewSimulator creates a simulator. The scoring engine and provider
// are required; logger may be nil.
func NewSimulator(provider HistoryProvider, engine *scoring.Engine, cfg Config, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Simulator{
		provider: provider,
		engine:   engine,
		cfg:      cfg,
		logger:   logger,
	}
}

// WithMetrics attaches a metrics registry; nil disables instrumentation
func (s *Simulator) WithMetrics(r *metrics.Registry) *Simulator {
	s.registry = r
	return s
}

// symbolScore is one result of the parallel scoring pass
type symbolScore struct {
	symbol string
	result core.ScoreResult
	close  float64
	ok     bool
}

// Run executes a backtest. Run-level failures surface on the result's
// Err field; Run never panics or returns a Go error across this
// boundary.
func (s *Simulator) Run(ctx context.Context, symbols []string, start, end time.Time) *core.BacktestResult {
	began := time.Now()

	sorted := append([]string(nil), symbols...)
	sort.Strings(sorted)

	result := &core.BacktestResult{
		ID:             uuid.NewString(),
		Symbols:        sorted,
		StartDate:      start,
		EndDate:        end,
		Frequency:      s.cfg.Frequency,
		InitialCapital: s.cfg.InitialCapital,
	}

	fail := func(err error) *core.BacktestResult {
		result.Err = err.Error()
		s.logger.Error("backtest failed", zap.String("id", result.ID), zap.Error(err))
		if s.registry != nil {
			s.registry.BacktestCompleted("failed", time.Since(began))
		}
		return result
	}

	if s.cfg.InitialCapital <= 0 {
		return fail(core.ErrNoCapital)
	}
	if len(sorted) == 0 {
		return fail(core.WrapError(core.ErrBacktestFailed, fmt.Errorf("no symbols requested")))
	}

	dates, err := rebalanceDates(start, end, s.cfg.Frequency)
	if err != nil {
		return fail(core.WrapError(core.ErrBacktestFailed, err))
	}
	if len(dates) == 0 {
		return fail(core.ErrNoRebalanceDates)
	}

	cash := s.cfg.InitialCapital
	positions := make(map[string]*core.Position, len(sorted))
	lastClose := make(map[string]float64, len(sorted))
	anyData := false

	for _, date := range dates {
		select {
		case <-ctx.Done():
			return fail(core.WrapError(core.ErrBacktestFailed, ctx.Err()))
		default:
		}

		// Step 1: scoring pass, parallel across symbols with a
		// barrier before any state mutation.
		scores, closes := s.scoringPass(ctx, sorted, date)
		if len(closes) > 0 {
			anyData = true
		}
		for sym, c := range closes {
			lastClose[sym] = c
		}

		// Steps 2-6 run on this single goroutine.
		cash = s.evaluateExits(date, positions, scores, closes, lastClose, cash, result)
		cash = s.openEntries(date, positions, scores, closes, cash, result)

		invested := 0.0
		for sym, pos := range positions {
			if !pos.IsOpen() {
				continue
			}
			price, ok := closes[sym]
			if !ok {
				// Documented fallback: last known close, else entry price
				if price, ok = lastClose[sym]; !ok {
					price = pos.EntryPrice
				}
			}
			invested += float64(pos.Shares) * price
		}

		result.Snapshots = append(result.Snapshots, core.PortfolioSnapshot{
			Date:     date,
			Value:    cash + invested,
			Cash:     cash,
			Invested: invested,
		})
		if s.registry != nil {
			s.registry.RebalanceProcessed()
		}
	}

	if !anyData {
		return fail(core.WrapError(core.ErrNoData, fmt.Errorf("no price history for any requested symbol")))
	}

	result.FinalValue = result.Snapshots[len(result.Snapshots)-1].Value
	result.Stats = CalculateStats(result.Snapshots)
	result.TradeStats = CalculateTradeStats(result.Trades)
	result.AvgExposure = AverageExposure(result.Snapshots)

	if s.cfg.Benchmark != "" {
		comparator := NewComparator(s.provider, s.logger)
		benchmark, err := comparator.Compare(s.cfg.Benchmark, start, end, result.Stats.AnnualizedReturn)
		if err != nil {
			s.logger.Warn("benchmark comparison unavailable",
				zap.String("benchmark", s.cfg.Benchmark),
				zap.Error(err),
			)
		} else {
			result.Benchmark = benchmark
		}
	}

	if s.registry != nil {
		s.registry.BacktestCompleted("ok", time.Since(began))
	}
	s.logger.Info("backtest complete",
		zap.String("id", result.ID),
		zap.Int("rebalances", len(result.Snapshots)),
		zap.Int("trades", len(result.Trades)),
		zap.Float64("final_value", result.FinalValue),
	)

	return result
}

// scoringPass scores every requested symbol as of the given date.
// Sentiment is omitted for historical passes so runs stay
// deterministic. Failed fetches and thin histories are logged and
// skipped, never fatal.
func (s *Simulator) scoringPass(ctx context.Context, symbols []string, date time.Time) (map[string]core.ScoreResult, map[string]float64) {
	jobs := make(chan string)
	out := make(chan symbolScore, len(symbols))

	var wg sync.WaitGroup
	for w := 0; w < s.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				out <- s.scoreSymbol(symbol, date)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, symbol := range symbols {
			select {
			case <-ctx.Done():
				return
			case jobs <- symbol:
			}
		}
	}()

	wg.Wait() // barrier: all scores collected before accounting begins
	close(out)

	scores := make(map[string]core.ScoreResult, len(symbols))
	closes := make(map[string]float64, len(symbols))
	for sc := range out {
		if !sc.ok {
			continue
		}
		scores[sc.symbol] = sc.result
		closes[sc.symbol] = sc.close
	}
	return scores, closes
}

func (s *Simulator) scoreSymbol(symbol string, date time.Time) symbolScore {
	windowStart := date.AddDate(0, 0, -s.cfg.HistoryDays)
	bars, err := s.provider.FetchHistory(symbol, windowStart, date, "1d")
	if err != nil {
		s.logger.Warn("history fetch failed during scoring pass",
			zap.String("symbol", symbol),
			zap.Time("date", date),
			zap.Error(err),
		)
		if s.registry != nil {
			s.registry.FetchError(symbol)
		}
		return symbolScore{symbol: symbol}
	}

	// Guard against providers returning bars beyond the window end
	for len(bars) > 0 && bars[len(bars)-1].Date.After(date) {
		bars = bars[:len(bars)-1]
	}

	if len(bars) < s.cfg.MinBars {
		s.logger.Debug("insufficient bars, skipping symbol",
			zap.String("symbol", symbol),
			zap.Time("date", date),
			zap.Int("bars", len(bars)),
		)
		return symbolScore{symbol: symbol}
	}

	series := indicator.Enrich(bars)
	result := s.engine.Score(series, symbol, nil, nil)
	if s.registry != nil {
		s.registry.ScoreComputed(string(result.Recommendation))
	}

	return symbolScore{
		symbol: symbol,
		result: result,
		close:  series.LastClose(),
		ok:     true,
	}
}

// evaluateExits sells every open position that scored below the exit
// threshold or has no score for this date. Returns updated cash.
func (s *Simulator) evaluateExits(date time.Time, positions map[string]*core.Position, scores map[string]core.ScoreResult, closes, lastClose map[string]float64, cash float64, result *core.BacktestResult) float64 {
	for _, symbol := range sortedOpenSymbols(positions) {
		pos := positions[symbol]

		var reason string
		score, scored := scores[symbol]
		switch {
		case !scored:
			reason = "no score available"
		case score.TotalScore < s.cfg.ExitScore:
			reason = fmt.Sprintf("score %.1f below exit threshold %.0f", score.TotalScore, s.cfg.ExitScore)
		default:
			continue
		}

		price, ok := closes[symbol]
		if !ok {
			if price, ok = lastClose[symbol]; !ok {
				price = pos.EntryPrice
			}
		}

		proceeds := float64(pos.Shares) * price * (1 - s.cfg.CommissionPct - s.cfg.SlippagePct)
		cash += proceeds

		result.Trades = append(result.Trades, core.Trade{
			Date:   date,
			Symbol: symbol,
			Action: core.TradeSell,
			Shares: pos.Shares,
			Price:  price,
			Reason: reason,
		})
		s.logger.Debug("position exited",
			zap.String("symbol", symbol),
			zap.Time("date", date),
			zap.String("reason", reason),
		)

		pos.Shares = 0 // zeroed, never deleted mid-run
	}
	return cash
}

// openEntries fills free slots with the best-scoring unheld symbols.
// Ties break by ascending symbol so runs are deterministic. Returns
// updated cash.
func (s *Simulator) openEntries(date time.Time, positions map[string]*core.Position, scores map[string]core.ScoreResult, closes map[string]float64, cash float64, result *core.BacktestResult) float64 {
	open := 0
	for _, pos := range positions {
		if pos.IsOpen() {
			open++
		}
	}
	slots := s.cfg.MaxPositions - open
	if slots <= 0 {
		return cash
	}

	var candidates []string
	for symbol, score := range scores {
		if pos, held := positions[symbol]; held && pos.IsOpen() {
			continue
		}
		if score.TotalScore >= s.cfg.MinEntryScore {
			candidates = append(candidates, symbol)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		si, sj := scores[candidates[i]].TotalScore, scores[candidates[j]].TotalScore
		if si != sj {
			return si > sj
		}
		return candidates[i] < candidates[j]
	})

	for _, symbol := range candidates {
		if slots == 0 {
			break
		}

		price := closes[symbol]
		if price <= 0 {
			continue
		}

		costFactor := 1 + s.cfg.CommissionPct + s.cfg.SlippagePct
		notional := cash * s.cfg.PositionSizePct
		shares := int64(math.Floor(notional / (price * costFactor)))
		if shares <= 0 {
			continue
		}

		cost := float64(shares) * price * costFactor
		if cost >= cash {
			continue
		}

		cash -= cost
		score := scores[symbol]
		positions[symbol] = &core.Position{
			Symbol:     symbol,
			Shares:     shares,
			EntryPrice: price,
			EntryDate:  date,
			StopLoss:   score.StopLoss,
			Target:     score.TargetPrice,
		}

		result.Trades = append(result.Trades, core.Trade{
			Date:   date,
			Symbol: symbol,
			Action: core.TradeBuy,
			Shares: shares,
			Price:  price,
			Reason: fmt.Sprintf("score %.1f (%s)", score.TotalScore, score.Recommendation),
		})
		s.logger.Debug("position opened",
			zap.String("symbol", symbol),
			zap.Time("date", date),
			zap.Int64("shares", shares),
			zap.Float64("price", price),
		)
		slots--
	}

	return cash
}

// sortedOpenSymbols returns open position symbols in ascending order
func sortedOpenSymbols(positions map[string]*core.Position) []string {
	symbols := make([]string, 0, len(positions))
	for symbol, pos := range positions {
		if pos.IsOpen() {
			symbols = append(symbols, symbol)
		}
	}
	sort.Strings(symbols)
	return symbols
}
