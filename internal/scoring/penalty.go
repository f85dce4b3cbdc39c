package scoring

import (
	"fmt"
	"math"

	"github.com/quantkit/alphabench/internal/indicator"
)

// maxLateEntryPenalty caps the total deduction for chasing a move.
const maxLateEntryPenalty = 40

// lateEntryPenalty deducts points when a price has already moved
// sharply, to discourage buying into an extended run. The warning
// string carries only the first critical condition; the penalty
// itself accumulates across all triggered conditions.
func lateEntryPenalty(s *indicator.Series) (float64, string) {
	penalty := 0.0
	warning := ""

	critical := func(msg string) {
		if warning == "" {
			warning = msg
		}
	}

	rsi := s.Latest(indicator.ColRSI)
	if !math.IsNaN(rsi) {
		if rsi > 80 {
			penalty += 25
			critical(fmt.Sprintf("RSI extremely overbought at %.1f", rsi))
		} else if rsi > 70 {
			penalty += 15
		}
	}

	if chg5 := s.PctChange(5); !math.IsNaN(chg5) {
		if chg5 > 20 {
			penalty += 20
			critical(fmt.Sprintf("parabolic move: +%.1f%% in 5 bars", chg5))
		} else if chg5 > 15 {
			penalty += 10
		}
	}

	close := s.LastClose()
	sma20 := s.Latest(indicator.ColSMA20)
	if !math.IsNaN(sma20) && sma20 > 0 {
		dist := (close - sma20) / sma20 * 100
		if dist > 15 {
			penalty += 15
			critical(fmt.Sprintf("price extended %.1f%% above 20-bar average", dist))
		} else if dist > 10 {
			penalty += 8
		}
	}

	if chg20 := s.PctChange(20); !math.IsNaN(chg20) && chg20 > 40 {
		penalty += 10
	}

	if penalty > maxLateEntryPenalty {
		penalty = maxLateEntryPenalty
	}

	return penalty, warning
}
