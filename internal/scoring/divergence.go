package scoring

import (
	"math"

	"github.com/quantkit/alphabench/internal/core"
	"github.com/quantkit/alphabench/internal/indicator"
)

const divergenceWindow = 20

// scoreDivergence looks for price-vs-oscillator divergences over the
// last 20 bars. Oscillators moving against price hint at reversals;
// agreement confirms the move. Base 50, clamped to [0,100].
func scoreDivergence(s *indicator.Series) core.Component {
	score := 50.0
	details := make(map[string]float64)

	last := s.Len() - 1
	prev := last - divergenceWindow
	if prev < 0 {
		return core.Component{Score: score, Status: statusLabel(score), Details: details}
	}

	priceDelta := s.Close(last) - s.Close(prev)
	details["price_delta"] = priceDelta

	// Price vs RSI
	rsiNow, rsiThen := s.At(indicator.ColRSI, last), s.At(indicator.ColRSI, prev)
	if !math.IsNaN(rsiNow) && !math.IsNaN(rsiThen) {
		score += divergencePoints(priceDelta, rsiNow-rsiThen)
		details["rsi_delta"] = rsiNow - rsiThen
	}

	// Price vs MACD
	macdNow, macdThen := s.At(indicator.ColMACD, last), s.At(indicator.ColMACD, prev)
	if !math.IsNaN(macdNow) && !math.IsNaN(macdThen) {
		score += divergencePoints(priceDelta, macdNow-macdThen)
		details["macd_delta"] = macdNow - macdThen
	}

	// OBV agreement: volume flow confirming price is the strongest read
	obvNow, obvThen := s.At(indicator.ColOBV, last), s.At(indicator.ColOBV, prev)
	if !math.IsNaN(obvNow) && !math.IsNaN(obvThen) {
		obvDelta := obvNow - obvThen
		switch {
		case sameSign(obvDelta, priceDelta):
			score += 15
		case obvDelta > 0 && priceDelta < 0:
			score += 10 // accumulation under a falling price
		case obvDelta < 0 && priceDelta > 0:
			score -= 10 // distribution under a rising price
		}
		details["obv_delta"] = obvDelta
	}

	score = clamp(score, 0, 100)
	return core.Component{Score: score, Status: statusLabel(score), Details: details}
}

// divergencePoints scores one price-vs-oscillator pair: +17 bullish
// divergence, -17 bearish divergence, +8 confirmation.
func divergencePoints(priceDelta, oscDelta float64) float64 {
	switch {
	case priceDelta < 0 && oscDelta > 0:
		return 17
	case priceDelta > 0 && oscDelta < 0:
		return -17
	case sameSign(priceDelta, oscDelta):
		return 8
	}
	return 0
}

func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}
