package scoring

import "github.com/Veraticus/rankflow/internal/model"

// RecommendAction applies the action rules in priority order; the first
// matching rule wins.
func RecommendAction(position int, trend model.Trend, intent model.Intent) model.Action {
	switch {
	case position >= 4 && position <= 10 && intent == model.IntentCommercial:
		return model.ActionReinforce
	case position >= 4 && position <= 10:
		return model.ActionOptimizeCTR
	case position > 10 && position <= 20:
		return model.ActionSupportContent
	case trend == model.TrendDown:
		return model.ActionInvestigateDrop
	default:
		return model.ActionMonitor
	}
}

// TrendFromDelta maps a position delta (previous minus current) to a trend.
func TrendFromDelta(delta int) model.Trend {
	switch {
	case delta > 0:
		return model.TrendUp
	case delta < 0:
		return model.TrendDown
	default:
		return model.TrendStable
	}
}
