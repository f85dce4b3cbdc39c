package scoring

import (
	"fmt"
	"math"

	"github.com/quantkit/alphabench/internal/core"
)

// Weights holds the relative weight of each sub-score. Weights must
// sum to 1.0.
type Weights struct {
	Trend      float64 `mapstructure:"trend"`
	Momentum   float64 `mapstructure:"momentum"`
	Sentiment  float64 `mapstructure:"sentiment"`
	Divergence float64 `mapstructure:"divergence"`
	Volume     float64 `mapstructure:"volume"`
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	return w.Trend + w.Momentum + w.Sentiment + w.Divergence + w.Volume
}

// Tier maps a minimum total score to a recommendation with fixed
// position-size guidance and conviction label.
type Tier struct {
	MinScore       float64             `mapstructure:"min_score"`
	Recommendation core.Recommendation `mapstructure:"recommendation"`
	PositionSize   string              `mapstructure:"position_size"`
	Conviction     string              `mapstructure:"conviction"`
}

// Config holds scoring engine configuration
type Config struct {
	Weights    Weights `mapstructure:"weights"`
	Tiers      []Tier  `mapstructure:"tiers"`
	MinHistory int     `mapstructure:"min_history"`
}

// DefaultConfig returns the standard weights and recommendation tiers
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Trend:      0.30,
			Momentum:   0.20,
			Sentiment:  0.25,
			Divergence: 0.15,
			Volume:     0.10,
		},
		Tiers: []Tier{
			{MinScore: 80, Recommendation: core.StrongBuy, PositionSize: "25-30% of allocated capital", Conviction: "very high"},
			{MinScore: 75, Recommendation: core.Buy, PositionSize: "15-20% of allocated capital", Conviction: "high"},
			{MinScore: 60, Recommendation: core.ModerateBuy, PositionSize: "10-15% of allocated capital", Conviction: "medium"},
			{MinScore: 40, Recommendation: core.Hold, PositionSize: "maintain existing position", Conviction: "low"},
			{MinScore: 26, Recommendation: core.ModerateSell, PositionSize: "reduce position by half", Conviction: "medium"},
			{MinScore: 11, Recommendation: core.Sell, PositionSize: "exit most of the position", Conviction: "high"},
			{MinScore: 0, Recommendation: core.StrongSell, PositionSize: "exit immediately", Conviction: "very high"},
		},
		MinHistory: 30,
	}
}

// Validate checks weights and tier ordering
func (c Config) Validate() error {
	if math.Abs(c.Weights.Sum()-1.0) > 1e-6 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("scoring weights must sum to 1.0, got %f", c.Weights.Sum()))
	}
	if len(c.Tiers) == 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("at least one recommendation tier is required"))
	}
	for i := 1; i < len(c.Tiers); i++ {
		if c.Tiers[i].MinScore >= c.Tiers[i-1].MinScore {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("recommendation tiers must be strictly descending at index %d", i))
		}
	}
	if c.Tiers[len(c.Tiers)-1].MinScore != 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("last recommendation tier must start at 0"))
	}
	if c.MinHistory <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("min_history must be positive, got %d", c.MinHistory))
	}
	return nil
}

// recommend finds the tier for a total score. Tiers are validated to
// be descending and exhaustive, so exactly one applies.
func (c Config) recommend(score float64) Tier {
	for _, tier := range c.Tiers {
		if score >= tier.MinScore {
			return tier
		}
	}
	return c.Tiers[len(c.Tiers)-1]
}
