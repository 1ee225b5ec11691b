package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/rankflow/internal/model"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		keyword string
		want    model.Intent
	}{
		{"buy shoes", model.IntentCommercial},
		{"Running Shoes PRICE", model.IntentCommercial},
		{"how to buy shoes", model.IntentCommercial},
		{"how to tie shoes", model.IntentInformational},
		{"best running shoes", model.IntentInformational},
		{"nike vs adidas", model.IntentInvestigation},
		{"shoe review", model.IntentInvestigation},
		{"running shoes", model.IntentInformational},
		{"comprar zapatillas", model.IntentCommercial},
		{"guía de zapatillas", model.IntentInformational},
		{"opiniones zapatillas", model.IntentInvestigation},
		{"buyer persona", model.IntentInformational},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.keyword))
		})
	}
}

func TestEstimateUplift(t *testing.T) {
	tests := []struct {
		name     string
		position int
		volume   int64
		cpc      float64
		want     float64
	}{
		{name: "position 5", position: 5, volume: 1000, cpc: 2, want: (100 - 50) * 2},
		{name: "position 10", position: 10, volume: 500, cpc: 1, want: 50 - 10},
		{name: "beyond curve", position: 15, volume: 1000, cpc: 1, want: 100 - 10},
		{name: "sentinel bucket", position: 21, volume: 1000, cpc: 1, want: 100 - 10},
		{name: "zero volume", position: 7, volume: 0, cpc: 5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EstimateUplift(tt.position, tt.volume, tt.cpc), 1e-9)
		})
	}
}

func TestEstimateUpliftZeroInTopThree(t *testing.T) {
	volumes := []int64{0, 1, 90, 12100, 1 << 40}
	cpcs := []float64{0, 0.01, 1.5, 999}
	for pos := -1; pos <= 3; pos++ {
		for _, v := range volumes {
			for _, c := range cpcs {
				assert.Zero(t, EstimateUplift(pos, v, c), "pos=%d vol=%d cpc=%v", pos, v, c)
			}
		}
	}
}

func TestEstimateClicks(t *testing.T) {
	assert.InDelta(t, 320, EstimateClicks(1, 1000), 1e-9)
	assert.InDelta(t, 10, EstimateClicks(15, 1000), 1e-9)
	assert.Zero(t, EstimateClicks(21, 1000))
	assert.Zero(t, EstimateClicks(0, 1000))
}

func TestUpliftClicks(t *testing.T) {
	assert.InDelta(t, 605, UpliftClicks(5, 12100), 1e-9)
	assert.InDelta(t, 79.2, UpliftClicks(14, 880), 1e-9)
	assert.Zero(t, UpliftClicks(3, 12100))
	assert.Zero(t, UpliftClicks(8, 0))
	assert.InDelta(t, EstimateUplift(7, 900, 1.5), UpliftClicks(7, 900)*1.5, 1e-9)
}

func TestOpportunityScore(t *testing.T) {
	tests := []struct {
		name   string
		inputs []OpportunityInput
		want   []float64
	}{
		{
			name: "cpc and difficulty",
			inputs: []OpportunityInput{
				{UpliftClicks: 100, Volume: 100, CPC: 1, Difficulty: 50},
				{UpliftClicks: 10, Volume: 1000, CPC: 2, Difficulty: 10},
			},
			want: []float64{55, 45},
		},
		{
			name: "cpc only",
			inputs: []OpportunityInput{
				{UpliftClicks: 100, Volume: 100, CPC: 1},
				{UpliftClicks: 10, Volume: 1000, CPC: 2},
			},
			want: []float64{65, 35},
		},
		{
			name: "difficulty only",
			inputs: []OpportunityInput{
				{UpliftClicks: 100, Volume: 100, Difficulty: 10},
				{UpliftClicks: 10, Volume: 1000, Difficulty: 50},
			},
			want: []float64{80, 20},
		},
		{
			name: "no cpc or difficulty",
			inputs: []OpportunityInput{
				{UpliftClicks: 100, Volume: 100},
				{UpliftClicks: 10, Volume: 1000},
			},
			want: []float64{70, 30},
		},
		{
			name: "constant batch",
			inputs: []OpportunityInput{
				{UpliftClicks: 40, Volume: 500, CPC: 1, Difficulty: 20},
				{UpliftClicks: 40, Volume: 500, CPC: 1, Difficulty: 20},
			},
			want: []float64{50, 50},
		},
		{
			name:   "single opportunity",
			inputs: []OpportunityInput{{UpliftClicks: 605, Volume: 12100, CPC: 1.2, Difficulty: 45}},
			want:   []float64{50},
		},
		{
			name: "rounded to one decimal",
			inputs: []OpportunityInput{
				{UpliftClicks: 0, Volume: 0},
				{UpliftClicks: 1, Volume: 0},
				{UpliftClicks: 3, Volume: 0},
			},
			want: []float64{15, 38.3, 85},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OpportunityScore(tt.inputs)
			assert.InDeltaSlice(t, tt.want, got, 1e-9)
			for _, s := range got {
				assert.GreaterOrEqual(t, s, 0.0)
				assert.LessOrEqual(t, s, 100.0)
			}
		})
	}

	assert.Nil(t, OpportunityScore(nil))
}

func TestOpportunityReason(t *testing.T) {
	assert.Equal(t, "position 5 to top 3: +605 clicks (~726 value)", OpportunityReason(5, 605, 726))
	assert.Equal(t, "position 14 to top 3: +79 clicks (no CPC data)", OpportunityReason(14, 79.2, 0))
}

func TestRecommendAction(t *testing.T) {
	tests := []struct {
		name     string
		trend    model.Trend
		intent   model.Intent
		want     model.Action
		position int
	}{
		{name: "money keyword", position: 4, trend: model.TrendStable, intent: model.IntentCommercial, want: model.ActionReinforce},
		{name: "page one informational", position: 10, trend: model.TrendDown, intent: model.IntentInformational, want: model.ActionOptimizeCTR},
		{name: "page two", position: 11, trend: model.TrendDown, intent: model.IntentCommercial, want: model.ActionSupportContent},
		{name: "page two edge", position: 20, trend: model.TrendUp, intent: model.IntentInvestigation, want: model.ActionSupportContent},
		{name: "top three falling", position: 2, trend: model.TrendDown, intent: model.IntentCommercial, want: model.ActionInvestigateDrop},
		{name: "unranked falling", position: 21, trend: model.TrendDown, intent: model.IntentInformational, want: model.ActionInvestigateDrop},
		{name: "top three stable", position: 1, trend: model.TrendStable, intent: model.IntentCommercial, want: model.ActionMonitor},
		{name: "unranked rising", position: 0, trend: model.TrendUp, intent: model.IntentInformational, want: model.ActionMonitor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecommendAction(tt.position, tt.trend, tt.intent))
		})
	}
}

func TestTrendFromDelta(t *testing.T) {
	assert.Equal(t, model.TrendUp, TrendFromDelta(3))
	assert.Equal(t, model.TrendDown, TrendFromDelta(-1))
	assert.Equal(t, model.TrendStable, TrendFromDelta(0))
}

func TestConcentration(t *testing.T) {
	tests := []struct {
		name   string
		shares []float64
		want   ConcentrationLevel
		hhi    float64
	}{
		{name: "monopoly", shares: []float64{100}, hhi: 10000, want: ConcentrationHigh},
		{name: "duopoly", shares: []float64{60, 40}, hhi: 5200, want: ConcentrationHigh},
		{name: "one leader", shares: []float64{40, 20, 20, 20}, hhi: 2800, want: ConcentrationHigh},
		{name: "four way split", shares: []float64{30, 30, 20, 20}, hhi: 2600, want: ConcentrationHigh},
		{name: "moderately concentrated", shares: []float64{35, 15, 15, 15, 10, 10}, hhi: 2100, want: ConcentrationModerate},
		{name: "competitive", shares: []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10}, hhi: 1000, want: ConcentrationCompetitive},
		{name: "empty", shares: nil, hhi: 0, want: ConcentrationCompetitive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hhi, level := Concentration(tt.shares)
			assert.InDelta(t, tt.hhi, hhi, 1e-9)
			assert.Equal(t, tt.want, level)
		})
	}
}

func TestIsBranded(t *testing.T) {
	assert.True(t, IsBranded("Acme running shoes", "acme.com", "rival.io"))
	assert.True(t, IsBranded("rival reviews", "www.acme.com", "rival.io"))
	assert.False(t, IsBranded("running shoes", "acme.com"))
	assert.False(t, IsBranded("anything", ""))
}
