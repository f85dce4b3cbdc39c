package indicator

import (
	"math"

	"github.com/quantkit/alphabench/internal/core"
)

// ADX calculates the Average Directional Index using Wilder smoothing.
// The first defined value appears at index 2*period-1.
func ADX(bars []core.PriceBar, period int) []float64 {
	result := nanSlice(len(bars))
	if period <= 0 || len(bars) < 2*period {
		return result
	}

	n := len(bars)
	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)

	for i := 1; i < n; i++ {
		high, low := bars[i].High, bars[i].Low
		prevHigh, prevLow, prevClose := bars[i-1].High, bars[i-1].Low, bars[i-1].Close

		tr[i] = math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))

		upMove := high - prevHigh
		downMove := prevLow - low
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	// Initial Wilder sums over the first period
	var trSum, plusSum, minusSum float64
	for i := 1; i <= period; i++ {
		trSum += tr[i]
		plusSum += plusDM[i]
		minusSum += minusDM[i]
	}

	dx := nanSlice(n)
	dx[period] = dxValue(plusSum, minusSum, trSum)

	for i := period + 1; i < n; i++ {
		trSum = trSum - trSum/float64(period) + tr[i]
		plusSum = plusSum - plusSum/float64(period) + plusDM[i]
		minusSum = minusSum - minusSum/float64(period) + minusDM[i]
		dx[i] = dxValue(plusSum, minusSum, trSum)
	}

	// ADX is the Wilder average of DX
	var dxSum float64
	for i := period; i < 2*period; i++ {
		dxSum += dx[i]
	}
	adx := dxSum / float64(period)
	result[2*period-1] = adx

	for i := 2 * period; i < n; i++ {
		adx = (adx*float64(period-1) + dx[i]) / float64(period)
		result[i] = adx
	}

	return result
}

func dxValue(plusSum, minusSum, trSum float64) float64 {
	if trSum == 0 {
		return 0
	}
	plusDI := 100 * plusSum / trSum
	minusDI := 100 * minusSum / trSum
	sum := plusDI + minusDI
	if sum == 0 {
		return 0
	}
	return 100 * math.Abs(plusDI-minusDI) / sum
}
