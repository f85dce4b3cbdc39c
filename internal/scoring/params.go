package scoring

// tradeParams holds derived entry, stop and target levels
type tradeParams struct {
	Entry      float64
	Stop       float64
	Target     float64
	RiskReward float64
}

// deriveTradeParams builds stop/target levels around the latest close.
// The stop/target percentages step on the pre-penalty weighted score:
// a high-conviction setup gets a tight stop and a wide target.
func deriveTradeParams(entry, preScore float64) tradeParams {
	if entry <= 0 {
		return tradeParams{}
	}

	var stopPct, targetPct float64
	switch {
	case preScore >= 80:
		stopPct, targetPct = 0.06, 0.25
	case preScore >= 60:
		stopPct, targetPct = 0.08, 0.20
	case preScore >= 40:
		stopPct, targetPct = 0.05, 0.10
	default:
		stopPct, targetPct = 0.08, 0.15
	}

	p := tradeParams{
		Entry:  entry,
		Stop:   entry * (1 - stopPct),
		Target: entry * (1 + targetPct),
	}

	risk := p.Entry - p.Stop
	if risk > 0 {
		p.RiskReward = (p.Target - p.Entry) / risk
	}
	// risk <= 0 leaves RiskReward at 0, never negative or divide-by-zero

	return p
}
