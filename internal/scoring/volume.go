package scoring

import (
	"math"

	"github.com/quantkit/alphabench/internal/core"
	"github.com/quantkit/alphabench/internal/indicator"
)

// scoreVolume rates volume participation from the ratio to the 20-bar
// average, position relative to VWAP, and MFI banding. Base 50,
// clamped to [0,100].
func scoreVolume(s *indicator.Series) core.Component {
	score := 50.0
	details := make(map[string]float64)

	if ratio := volumeRatio(s, 20); !math.IsNaN(ratio) {
		switch {
		case ratio >= 2.5:
			score += 20
		case ratio >= 1.8:
			score += 15
		case ratio >= 1.2:
			score += 10
		case ratio < 0.5:
			score -= 10
		}
		details["volume_ratio"] = ratio
	}

	close := s.LastClose()
	vwap := s.Latest(indicator.ColVWAP)
	if !math.IsNaN(vwap) && vwap > 0 {
		diff := (close - vwap) / vwap * 100
		switch {
		case diff >= 2:
			score += 15
		case diff > 0:
			score += 8
		case diff <= -2:
			score -= 15
		case diff < 0:
			score -= 8
		}
		details["vwap"] = vwap
	}

	// MFI banding mirrors the RSI banding in the momentum component
	mfi := s.Latest(indicator.ColMFI)
	if !math.IsNaN(mfi) {
		switch {
		case mfi >= 40 && mfi <= 60:
			score += 15
		case mfi > 60 && mfi <= 70:
			score += 8
		case mfi < 30:
			score += 5
		case mfi > 70:
			score -= 15
		}
		details["mfi"] = mfi
	}

	score = clamp(score, 0, 100)
	return core.Component{Score: score, Status: statusLabel(score), Details: details}
}

// volumeRatio compares the latest volume to the average of the
// preceding period bars.
func volumeRatio(s *indicator.Series, period int) float64 {
	last := s.Len() - 1
	if last < period {
		return math.NaN()
	}
	var sum float64
	for i := last - period; i < last; i++ {
		sum += float64(s.Bars[i].Volume)
	}
	avg := sum / float64(period)
	if avg == 0 {
		return math.NaN()
	}
	return float64(s.Bars[last].Volume) / avg
}
