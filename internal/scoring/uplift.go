package scoring

// TargetPosition is the rank the uplift estimate promotes a keyword to.
const TargetPosition = 3

// defaultCTR applies to every position without an explicit curve entry.
const defaultCTR = 0.01

var ctrCurve = map[int]float64{
	1: 0.32, 2: 0.15, 3: 0.10, 4: 0.07, 5: 0.05,
	6: 0.04, 7: 0.03, 8: 0.03, 9: 0.02, 10: 0.02,
}

// CTR returns the expected click-through rate at a position.
func CTR(position int) float64 {
	if rate, ok := ctrCurve[position]; ok {
		return rate
	}
	return defaultCTR
}

// EstimateUplift returns the monetary value of moving a keyword from its
// current position to TargetPosition. Positions at or above the target
// have no uplift.
func EstimateUplift(position int, volume int64, cpc float64) float64 {
	if position <= TargetPosition {
		return 0
	}
	v := float64(volume)
	return (v*CTR(TargetPosition) - v*CTR(position)) * cpc
}

// EstimateClicks returns the monthly clicks expected at a position.
// Rankings outside the tracked window earn nothing.
func EstimateClicks(position int, volume int64) float64 {
	if position < 1 || position > 20 {
		return 0
	}
	return float64(volume) * CTR(position)
}
