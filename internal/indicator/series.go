// Package indicator computes technical indicators over price history.
//
// All indicator functions return columns aligned to the input bars:
// the result always has the same length as the input, with NaN in the
// leading positions where the indicator is not yet defined. Alignment
// keeps every column addressable by bar index.
package indicator

import (
	"math"

	"github.com/quantkit/alphabench/internal/core"
)

// Column names produced by Enrich.
const (
	ColSMA20      = "sma_20"
	ColSMA50      = "sma_50"
	ColSMA200     = "sma_200"
	ColRSI        = "rsi_14"
	ColMACD       = "macd"
	ColMACDSignal = "macd_signal"
	ColMACDHist   = "macd_hist"
	ColADX        = "adx_14"
	ColOBV        = "obv"
	ColVWAP       = "vwap"
	ColMFI        = "mfi_14"
	ColATR        = "atr_14"
)

// Columns lists every column Enrich produces, in a stable order.
var Columns = []string{
	ColSMA20, ColSMA50, ColSMA200,
	ColRSI, ColMACD, ColMACDSignal, ColMACDHist,
	ColADX, ColOBV, ColVWAP, ColMFI, ColATR,
}

// Series is a price table enriched with indicator columns. Columns are
// aligned to Bars: Columns[name][i] corresponds to Bars[i].
type Series struct {
	Bars    []core.PriceBar
	Columns map[string][]float64
}

// Len returns the number of bars in the series
func (s *Series) Len() int {
	return len(s.Bars)
}

// Close returns the closing price at index i
func (s *Series) Close(i int) float64 {
	return s.Bars[i].Close
}

// LastClose returns the most recent closing price, or 0 for an empty series
func (s *Series) LastClose() float64 {
	if len(s.Bars) == 0 {
		return 0
	}
	return s.Bars[len(s.Bars)-1].Close
}

// At returns the value of column name at index i, or NaN if the column
// is missing or the index is out of range.
func (s *Series) At(name string, i int) float64 {
	col, ok := s.Columns[name]
	if !ok || i < 0 || i >= len(col) {
		return math.NaN()
	}
	return col[i]
}

// Latest returns the most recent value of column name, or NaN
func (s *Series) Latest(name string) float64 {
	return s.At(name, len(s.Bars)-1)
}

// Has reports whether column name has a usable (non-NaN) latest value
func (s *Series) Has(name string) bool {
	return !math.IsNaN(s.Latest(name))
}

// PctChange returns the percentage change of the close over the last n
// bars, or NaN when the series is too short.
func (s *Series) PctChange(n int) float64 {
	last := len(s.Bars) - 1
	if n <= 0 || last-n < 0 {
		return math.NaN()
	}
	prev := s.Bars[last-n].Close
	if prev == 0 {
		return math.NaN()
	}
	return (s.Bars[last].Close - prev) / prev * 100
}

// Enrich computes every supported indicator column for the given bars.
// Short inputs are not an error: columns that cannot be computed are
// simply all-NaN, and scoring degrades accordingly.
func Enrich(bars []core.PriceBar) *Series {
	s := &Series{
		Bars:    bars,
		Columns: make(map[string][]float64, len(Columns)),
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	s.Columns[ColSMA20] = SMA(closes, 20)
	s.Columns[ColSMA50] = SMA(closes, 50)
	s.Columns[ColSMA200] = SMA(closes, 200)
	s.Columns[ColRSI] = RSI(closes, 14)

	macd, signal, hist := MACD(closes, 12, 26, 9)
	s.Columns[ColMACD] = macd
	s.Columns[ColMACDSignal] = signal
	s.Columns[ColMACDHist] = hist

	s.Columns[ColADX] = ADX(bars, 14)
	s.Columns[ColOBV] = OBV(bars)
	s.Columns[ColVWAP] = VWAP(bars)
	s.Columns[ColMFI] = MFI(bars, 14)
	s.Columns[ColATR] = ATR(bars, 14)

	return s
}

// nanSlice returns a slice of n NaN values
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
