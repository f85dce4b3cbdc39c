package indicator

import (
	"math"

	"github.com/quantkit/alphabench/internal/core"
)

// ATR calculates the Average True Range using Wilder smoothing.
func ATR(bars []core.PriceBar, period int) []float64 {
	result := nanSlice(len(bars))
	if period <= 0 || len(bars) <= period {
		return result
	}

	n := len(bars)
	tr := make([]float64, n)
	tr[0] = bars[0].High - bars[0].Low
	for i := 1; i < n; i++ {
		high, low, prevClose := bars[i].High, bars[i].Low, bars[i-1].Close
		tr[i] = math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
	}

	var sum float64
	for i := 1; i <= period; i++ {
		sum += tr[i]
	}
	atr := sum / float64(period)
	result[period] = atr

	for i := period + 1; i < n; i++ {
		atr = (atr*float64(period-1) + tr[i]) / float64(period)
		result[i] = atr
	}

	return result
}
