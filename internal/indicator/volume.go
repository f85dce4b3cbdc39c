package indicator

import (
	"github.com/quantkit/alphabench/internal/core"
)

// OBV calculates On-Balance Volume. Defined from the first bar.
func OBV(bars []core.PriceBar) []float64 {
	result := nanSlice(len(bars))
	if len(bars) == 0 {
		return result
	}

	obv := 0.0
	result[0] = obv
	for i := 1; i < len(bars); i++ {
		switch {
		case bars[i].Close > bars[i-1].Close:
			obv += float64(bars[i].Volume)
		case bars[i].Close < bars[i-1].Close:
			obv -= float64(bars[i].Volume)
		}
		result[i] = obv
	}

	return result
}

// VWAP calculates the cumulative Volume-Weighted Average Price over
// the whole series, using the typical price (H+L+C)/3 per bar.
func VWAP(bars []core.PriceBar) []float64 {
	result := nanSlice(len(bars))

	var cumPV, cumVol float64
	for i, b := range bars {
		typical := (b.High + b.Low + b.Close) / 3
		cumPV += typical * float64(b.Volume)
		cumVol += float64(b.Volume)
		if cumVol > 0 {
			result[i] = cumPV / cumVol
		}
	}

	return result
}

// MFI calculates the Money Flow Index, a volume-weighted RSI analogue.
func MFI(bars []core.PriceBar, period int) []float64 {
	result := nanSlice(len(bars))
	if period <= 0 || len(bars) <= period {
		return result
	}

	n := len(bars)
	posFlow := make([]float64, n)
	negFlow := make([]float64, n)

	prevTypical := (bars[0].High + bars[0].Low + bars[0].Close) / 3
	for i := 1; i < n; i++ {
		typical := (bars[i].High + bars[i].Low + bars[i].Close) / 3
		flow := typical * float64(bars[i].Volume)
		if typical > prevTypical {
			posFlow[i] = flow
		} else if typical < prevTypical {
			negFlow[i] = flow
		}
		prevTypical = typical
	}

	for i := period; i < n; i++ {
		var pos, neg float64
		for j := i - period + 1; j <= i; j++ {
			pos += posFlow[j]
			neg += negFlow[j]
		}
		if neg == 0 {
			result[i] = 100
			continue
		}
		ratio := pos / neg
		result[i] = 100 - 100/(1+ratio)
	}

	return result
}
