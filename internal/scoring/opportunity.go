package scoring

import (
	"fmt"
	"math"
)

// OpportunityInput carries the metrics an opportunity is scored on. A zero
// CPC or difficulty means the export had no value for it.
type OpportunityInput struct {
	UpliftClicks float64
	CPC          float64
	Volume       int64
	Difficulty   int64
}

type scoreWeights struct {
	clicks, volume, cpc, ease float64
}

// UpliftClicks returns the monthly clicks gained by moving a keyword from its
// current position to TargetPosition.
func UpliftClicks(position int, volume int64) float64 {
	if position <= TargetPosition {
		return 0
	}
	v := float64(volume)
	return v*CTR(TargetPosition) - v*CTR(position)
}

// OpportunityScore rates each input from 0 to 100 relative to the rest of
// the batch. Every metric is min-max normalized across the batch, and a
// metric that is constant across it scores 0.5. The weights shift toward
// uplift clicks when CPC or difficulty data is absent from the whole batch.
func OpportunityScore(inputs []OpportunityInput) []float64 {
	if len(inputs) == 0 {
		return nil
	}

	var hasCPC, hasKD bool
	clicks := make([]float64, len(inputs))
	volume := make([]float64, len(inputs))
	cpc := make([]float64, len(inputs))
	ease := make([]float64, len(inputs))
	for i, in := range inputs {
		clicks[i] = in.UpliftClicks
		volume[i] = float64(in.Volume)
		cpc[i] = in.CPC
		ease[i] = 1 / (float64(in.Difficulty) + 1)
		hasCPC = hasCPC || in.CPC > 0
		hasKD = hasKD || in.Difficulty > 0
	}

	w := weightsFor(hasCPC, hasKD)
	clicks, volume, cpc, ease = minMax(clicks), minMax(volume), minMax(cpc), minMax(ease)

	scores := make([]float64, len(inputs))
	for i := range inputs {
		s := clicks[i]*w.clicks + volume[i]*w.volume + cpc[i]*w.cpc + ease[i]*w.ease
		scores[i] = math.Round(s*1000) / 10
	}
	return scores
}

// OpportunityReason explains an uplift estimate in one line.
func OpportunityReason(position int, clicks, value float64) string {
	base := fmt.Sprintf("position %d to top %d: +%.0f clicks", position, TargetPosition, clicks)
	if value > 0 {
		return fmt.Sprintf("%s (~%.0f value)", base, value)
	}
	return base + " (no CPC data)"
}

func weightsFor(hasCPC, hasKD bool) scoreWeights {
	switch {
	case hasCPC && hasKD:
		return scoreWeights{clicks: 0.55, volume: 0.20, cpc: 0.15, ease: 0.10}
	case hasCPC:
		return scoreWeights{clicks: 0.65, volume: 0.25, cpc: 0.10}
	case hasKD:
		return scoreWeights{clicks: 0.70, volume: 0.20, ease: 0.10}
	default:
		return scoreWeights{clicks: 0.70, volume: 0.30}
	}
}

func minMax(values []float64) []float64 {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	out := make([]float64, len(values))
	for i, v := range values {
		if hi == lo {
			out[i] = 0.5
			continue
		}
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}
