package scoring

import (
	"math"

	"github.com/quantkit/alphabench/internal/core"
	"github.com/quantkit/alphabench/internal/indicator"
)

// scoreMomentum rates momentum from RSI banding, the MACD crossover
// and the 30-day rate of change. Base 50, clamped to [0,100].
func scoreMomentum(s *indicator.Series) core.Component {
	score := 50.0
	details := make(map[string]float64)

	rsi := s.Latest(indicator.ColRSI)
	if !math.IsNaN(rsi) {
		switch {
		case rsi >= 40 && rsi <= 60:
			score += 15 // healthy neutral zone
		case rsi > 60 && rsi <= 70:
			score += 8
		case rsi < 30:
			score += 5 // oversold, small contrarian credit
		case rsi > 70:
			score -= 15
		}
		details["rsi"] = rsi
	}

	macd := s.Latest(indicator.ColMACD)
	signal := s.Latest(indicator.ColMACDSignal)
	hist := s.Latest(indicator.ColMACDHist)
	if !math.IsNaN(macd) && !math.IsNaN(signal) {
		confirmed := !math.IsNaN(hist)
		switch {
		case macd > signal && confirmed && hist > 0:
			score += 17
		case macd > signal:
			score += 10
		case macd < signal && confirmed && hist < 0:
			score -= 17
		case macd < signal:
			score -= 10
		}
		details["macd"] = macd
		details["macd_signal"] = signal
	}

	roc := s.PctChange(30)
	if !math.IsNaN(roc) {
		magnitude := math.Abs(roc)
		var points float64
		switch {
		case magnitude >= 20:
			points = 15
		case magnitude >= 10:
			points = 12
		case magnitude >= 5:
			points = 8
		case magnitude >= 2:
			points = 5
		}
		if roc < 0 {
			points = -points
		}
		score += points
		details["roc_30"] = roc
	}

	score = clamp(score, 0, 100)
	return core.Component{Score: score, Status: statusLabel(score), Details: details}
}
