package scoring

import (
	"math"

	"github.com/quantkit/alphabench/internal/core"
	"github.com/quantkit/alphabench/internal/indicator"
)

// scoreTrend rates trend quality from SMA alignment, ADX strength and
// the 30-bar price change. Base 50, clamped to [0,100].
func scoreTrend(s *indicator.Series) core.Component {
	score := 50.0
	details := make(map[string]float64)

	close := s.LastClose()
	sma20 := s.Latest(indicator.ColSMA20)
	sma50 := s.Latest(indicator.ColSMA50)
	sma200 := s.Latest(indicator.ColSMA200)

	if !math.IsNaN(sma20) && !math.IsNaN(sma50) {
		haveLong := !math.IsNaN(sma200)
		switch {
		case haveLong && sma20 > sma50 && sma50 > sma200 && close > sma20:
			score += 25 // perfect bullish alignment
		case haveLong && sma20 > sma50 && sma50 > sma200:
			score += 15
		case sma20 > sma50:
			score += 10
		case haveLong && sma20 < sma50 && sma50 < sma200 && close < sma20:
			score -= 25
		case haveLong && sma20 < sma50 && sma50 < sma200:
			score -= 15
		case sma20 < sma50:
			score -= 10
		}
		details["sma_20"] = sma20
		details["sma_50"] = sma50
	}

	// ADX measures trend strength, not direction: strong readings are
	// credited in the direction the averages point, weak readings are
	// penalized outright.
	adx := s.Latest(indicator.ColADX)
	if !math.IsNaN(adx) {
		up := trendIsUp(s, close, sma20, sma50)
		switch {
		case adx >= 40:
			if up {
				score += 15
			} else {
				score -= 15
			}
		case adx >= 30:
			score += 12
		case adx >= 25:
			score += 8
		case adx < 20:
			score -= 5
		}
		details["adx"] = adx
	}

	chg := s.PctChange(30)
	if !math.IsNaN(chg) {
		switch {
		case chg >= 15:
			score += 15
		case chg >= 8:
			score += 10
		case chg >= 3:
			score += 5
		case chg <= -15:
			score -= 15
		case chg <= -8:
			score -= 10
		case chg <= -3:
			score -= 5
		}
		details["change_30"] = chg
	}

	score = clamp(score, 0, 100)
	return core.Component{Score: score, Status: statusLabel(score), Details: details}
}

// trendIsUp decides trend direction from the moving averages, falling
// back to the 30-bar change when the averages are unavailable.
func trendIsUp(s *indicator.Series, close, sma20, sma50 float64) bool {
	if !math.IsNaN(sma20) && !math.IsNaN(sma50) {
		return sma20 > sma50
	}
	if chg := s.PctChange(30); !math.IsNaN(chg) {
		return chg > 0
	}
	return close > 0
}
