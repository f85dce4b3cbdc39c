// Package scoring implements the weighted multi-factor scoring engine.
//
// A score is a bounded, reproducible number in [0,100] built from five
// sub-scores (trend, momentum, sentiment, divergence, volume), reduced
// by a late-entry penalty and mapped to an ordered recommendation
// tier. Scoring never fails the caller: broken or insufficient input
// yields an explicit neutral result.
package scoring

import (
	"math"

	"github.com/quantkit/alphabench/internal/core"
	"github.com/quantkit/alphabench/internal/indicator"
	"github.com/quantkit/alphabench/internal/sentiment"
	"go.uber.org/zap"
)

// Engine scores one symbol at one point in time
type Engine struct {
	cfg    Config
	logger *zap.Logger
}

// NewEngine creates a scoring engine with validated configuration
func NewEngine(cfg Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, logger: logger}, nil
}

// Neutral returns the explicit fallback result: all sub-scores 50,
// HOLD, zero trade parameters, zero confidence. Returned instead of
// an error so scoring can never abort a caller's loop.
func Neutral(symbol string) core.ScoreResult {
	neutral := core.Component{Score: 50, Status: "neutral"}
	cfg := DefaultConfig()
	tier := cfg.recommend(50)
	return core.ScoreResult{
		Symbol:        symbol,
		TotalScore:    50,
		OriginalScore: 50,
		Components: core.ScoreComponents{
			Trend:      neutral,
			Momentum:   neutral,
			Sentiment:  neutral,
			Divergence: neutral,
			Volume:     neutral,
		},
		Recommendation: tier.Recommendation,
		PositionSize:   tier.PositionSize,
		Conviction:     tier.Conviction,
		Neutral:        true,
	}
}

// Score computes the full score for one symbol from an enriched price
// series and optional sentiment snapshots. Sentiment arrives as
// already-computed values; the engine performs no I/O. The result is
// deterministic for identical inputs: GeneratedAt is the date of the
// last bar, not wall-clock time.
func (e *Engine) Score(series *indicator.Series, symbol string, news *sentiment.NewsSnapshot, social *sentiment.SocialSnapshot) core.ScoreResult {
	if series == nil || series.Len() < e.cfg.MinHistory {
		n := 0
		if series != nil {
			n = series.Len()
		}
		e.logger.Debug("insufficient history for scoring",
			zap.String("symbol", symbol),
			zap.Int("bars", n),
			zap.Int("required", e.cfg.MinHistory),
		)
		return Neutral(symbol)
	}

	components := core.ScoreComponents{
		Trend:      scoreTrend(series),
		Momentum:   scoreMomentum(series),
		Sentiment:  scoreSentiment(news, social),
		Divergence: scoreDivergence(series),
		Volume:     scoreVolume(series),
	}

	w := e.cfg.Weights
	original := components.Trend.Score*w.Trend +
		components.Momentum.Score*w.Momentum +
		components.Sentiment.Score*w.Sentiment +
		components.Divergence.Score*w.Divergence +
		components.Volume.Score*w.Volume

	penalty, warning := lateEntryPenalty(series)
	total := clamp(original-penalty, 0, 100)

	tier := e.cfg.recommend(total)
	params := deriveTradeParams(series.LastClose(), original)

	return core.ScoreResult{
		Symbol:           symbol,
		TotalScore:       total,
		OriginalScore:    original,
		LateEntryPenalty: penalty,
		Warning:          warning,
		Components:       components,
		Recommendation:   tier.Recommendation,
		PositionSize:     tier.PositionSize,
		Conviction:       tier.Conviction,
		EntryPrice:       params.Entry,
		StopLoss:         params.Stop,
		TargetPrice:      params.Target,
		RiskRewardRatio:  params.RiskReward,
		Confidence:       confidence(total, series),
		GeneratedAt:      series.Bars[series.Len()-1].Date,
	}
}

// confidence grows with distance from the neutral score and with the
// number of indicator columns that were actually available.
func confidence(total float64, s *indicator.Series) float64 {
	c := 0.5 + 0.3*math.Abs(total-50)/50

	available := 0
	for _, name := range indicator.Columns {
		if s.Has(name) {
			available++
		}
	}
	c += 0.2 * float64(available) / float64(len(indicator.Columns))

	return clamp(c, 0, 1)
}

// clamp bounds v to [lo,hi]
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// statusLabel maps a sub-score to its qualitative label
func statusLabel(score float64) string {
	switch {
	case score >= 60:
		return "bullish"
	case score <= 40:
		return "bearish"
	default:
		return "neutral"
	}
}
