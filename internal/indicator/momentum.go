package indicator

import "math"

// RSI calculates the Relative Strength Index using Wilder smoothing.
func RSI(prices []float64, period int) []float64 {
	result := nanSlice(len(prices))
	if period <= 0 || len(prices) <= period {
		return result
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	result[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		var gain, loss float64
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		result[i] = rsiValue(avgGain, avgLoss)
	}

	return result
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// MACD calculates the MACD line, signal line and histogram for the
// given fast/slow/signal periods (conventionally 12/26/9).
func MACD(prices []float64, fast, slow, signalPeriod int) (macd, signal, hist []float64) {
	n := len(prices)
	macd = nanSlice(n)
	signal = nanSlice(n)
	hist = nanSlice(n)

	fastEMA := EMA(prices, fast)
	slowEMA := EMA(prices, slow)

	for i := 0; i < n; i++ {
		if !math.IsNaN(fastEMA[i]) && !math.IsNaN(slowEMA[i]) {
			macd[i] = fastEMA[i] - slowEMA[i]
		}
	}

	// Signal is an EMA of the defined MACD values
	start := -1
	for i := 0; i < n; i++ {
		if !math.IsNaN(macd[i]) {
			start = i
			break
		}
	}
	if start < 0 || n-start < signalPeriod {
		return macd, signal, hist
	}

	sigVals := EMA(macd[start:], signalPeriod)
	for i, v := range sigVals {
		signal[start+i] = v
		if !math.IsNaN(v) {
			hist[start+i] = macd[start+i] - v
		}
	}

	return macd, signal, hist
}
