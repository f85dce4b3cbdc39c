package core

import "time"

// PriceBar represents one bar of daily OHLCV history
type PriceBar struct {
	Symbol string
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// IsValid checks if the bar has required fields
func (b PriceBar) IsValid() bool {
	return b.Symbol != "" && b.Close > 0
}

// Quote represents a real-time price quote
type Quote struct {
	Symbol string
	Price  float64
	Volume int64
	Time   time.Time
	Source string
}

// Recommendation is an ordered action tier derived from a total score
type Recommendation string

const (
	StrongBuy    Recommendation = "STRONG BUY"
	Buy          Recommendation = "BUY"
	ModerateBuy  Recommendation = "MODERATE BUY"
	Hold         Recommendation = "HOLD"
	ModerateSell Recommendation = "MODERATE SELL"
	Sell         Recommendation = "SELL"
	StrongSell   Recommendation = "STRONG SELL"
)

// Component holds one sub-score with its diagnostic context
type Component struct {
	Score   float64            `json:"score"` // clamped to [0,100]
	Status  string             `json:"status"`
	Details map[string]float64 `json:"details,omitempty"`
}

// ScoreComponents groups the five weighted sub-scores
type ScoreComponents struct {
	Trend      Component `json:"trend"`
	Momentum   Component `json:"momentum"`
	Sentiment  Component `json:"sentiment"`
	Divergence Component `json:"divergence"`
	Volume     Component `json:"volume"`
}

// ScoreResult is the full output of the scoring engine for one symbol
// at one point in time. Values are never mutated after construction.
type ScoreResult struct {
	Symbol           string          `json:"symbol"`
	TotalScore       float64         `json:"total_score"`    // [0,100]
	OriginalScore    float64         `json:"original_score"` // pre-penalty weighted sum
	LateEntryPenalty float64         `json:"late_entry_penalty"`
	Warning          string          `json:"warning,omitempty"`
	Components       ScoreComponents `json:"components"`
	Recommendation   Recommendation  `json:"recommendation"`
	PositionSize     string          `json:"position_size"`
	Conviction       string          `json:"conviction"`
	EntryPrice       float64         `json:"entry_price"`
	StopLoss         float64         `json:"stop_loss"`
	TargetPrice      float64         `json:"target_price"`
	RiskRewardRatio  float64         `json:"risk_reward_ratio"` // >= 0
	Confidence       float64         `json:"confidence"`        // [0,1]
	Neutral          bool            `json:"neutral"`           // fallback result, not a real read
	GeneratedAt      time.Time       `json:"generated_at"`
}

// TradeAction is the direction of a simulated trade
type TradeAction string

const (
	TradeBuy  TradeAction = "BUY"
	TradeSell TradeAction = "SELL"
)

// Position is a holding owned by the portfolio simulator. Positions are
// zeroed on exit, never deleted mid-run.
type Position struct {
	Symbol     string    `json:"symbol"`
	Shares     int64     `json:"shares"`
	EntryPrice float64   `json:"entry_price"`
	EntryDate  time.Time `json:"entry_date"`
	StopLoss   float64   `json:"stop_loss"`
	Target     float64   `json:"target"`
}

// IsOpen returns true if the position has shares outstanding
func (p Position) IsOpen() bool {
	return p.Shares > 0
}

// Trade is an immutable, append-only log record of one simulated fill
type Trade struct {
	Date   time.Time   `json:"date"`
	Symbol string      `json:"symbol"`
	Action TradeAction `json:"action"`
	Shares int64       `json:"shares"`
	Price  float64     `json:"price"`
	Reason string      `json:"reason"`
}

// PortfolioSnapshot records portfolio state at one rebalance date.
// Invariant: Value == Cash + Invested.
type PortfolioSnapshot struct {
	Date     time.Time `json:"date"`
	Value    float64   `json:"value"`
	Cash     float64   `json:"cash"`
	Invested float64   `json:"invested"`
}

// PerformanceStats holds return and risk statistics for a value series
type PerformanceStats struct {
	TotalReturn      float64 `json:"total_return"`
	AnnualizedReturn float64 `json:"annualized_return"`
	Volatility       float64 `json:"volatility"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	SortinoRatio     float64 `json:"sortino_ratio"`
	MaxDrawdown      float64 `json:"max_drawdown"`
	CalmarRatio      float64 `json:"calmar_ratio"`
}

// TradeStats summarizes the trade log
type TradeStats struct {
	TotalTrades   int     `json:"total_trades"`
	Buys          int     `json:"buys"`
	Sells         int     `json:"sells"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"`
}

// BenchmarkComparison relates strategy performance to a reference instrument
type BenchmarkComparison struct {
	Symbol string           `json:"symbol"`
	Stats  PerformanceStats `json:"stats"`
	Alpha  float64          `json:"alpha"`
}

// BacktestResult aggregates everything a simulation run produced.
// Created once per run and read-only afterward. Callers must check Err
// before treating the rest of the result as valid.
type BacktestResult struct {
	ID             string               `json:"id"`
	Symbols        []string             `json:"symbols"`
	StartDate      time.Time            `json:"start_date"`
	EndDate        time.Time            `json:"end_date"`
	Frequency      string               `json:"frequency"`
	InitialCapital float64              `json:"initial_capital"`
	FinalValue     float64              `json:"final_value"`
	Stats          PerformanceStats     `json:"stats"`
	TradeStats     TradeStats           `json:"trade_stats"`
	AvgExposure    float64              `json:"avg_exposure"`
	Snapshots      []PortfolioSnapshot  `json:"snapshots"`
	Trades         []Trade              `json:"trades"`
	Benchmark      *BenchmarkComparison `json:"benchmark,omitempty"`
	Err            string               `json:"error,omitempty"`
}

// Failed returns true if the run ended with a run-level error
func (r *BacktestResult) Failed() bool {
	return r.Err != ""
}
