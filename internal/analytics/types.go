package analytics

import (
	"github.com/Veraticus/rankflow/internal/model"
	"github.com/Veraticus/rankflow/internal/scoring"
)

// ExecutiveSummary holds the headline KPIs of one domain in one import.
// Top3, Top10 and Top20 are cumulative.
type ExecutiveSummary struct {
	ImportID         string  `json:"import_id"`
	Domain           string  `json:"domain"`
	TotalVisibility  float64 `json:"total_visibility"`
	ShareOfVoice     float64 `json:"share_of_voice"`
	AvgPosition      float64 `json:"avg_position"`
	EstimatedTraffic float64 `json:"estimated_traffic"`
	EstimatedValue   float64 `json:"estimated_value"`
	Keywords         int     `json:"keywords"`
	Top3             int     `json:"top_3"`
	Top10            int     `json:"top_10"`
	Top20            int     `json:"top_20"`
	OutOfTop20       int     `json:"out_of_top_20"`
	StrikingDistance int     `json:"striking_distance"`
}

// DomainBenchmark is one row of the competitor benchmark. AvgPosition only
// counts positions within the top 20.
type DomainBenchmark struct {
	Domain           string  `json:"domain"`
	TotalVisibility  float64 `json:"total_visibility"`
	ShareOfVoice     float64 `json:"share_of_voice"`
	AvgPosition      float64 `json:"avg_position"`
	Keywords         int     `json:"keywords"`
	Top3             int     `json:"top_3"`
	Top10            int     `json:"top_10"`
	Top20            int     `json:"top_20"`
	OutOfTop20       int     `json:"out_of_top_20"`
	StrikingDistance int     `json:"striking_distance"`
}

// CompetitorBenchmark compares every domain of an import.
type CompetitorBenchmark struct {
	Concentration    scoring.ConcentrationLevel `json:"concentration"`
	Domains          []DomainBenchmark          `json:"domains"`
	MarketVisibility float64                    `json:"market_visibility"`
	HHI              float64                    `json:"hhi"`
}

// Distribution counts a domain's facts in exclusive position buckets.
type Distribution struct {
	Top3      int `json:"top_3"`
	Top4To10  int `json:"top_4_10"`
	Top11To20 int `json:"top_11_20"`
	Beyond20  int `json:"beyond_20"`
}

// Total returns the number of facts across all buckets.
func (d Distribution) Total() int {
	return d.Top3 + d.Top4To10 + d.Top11To20 + d.Beyond20
}

// Opportunity is a keyword ranked between 4 and 20. Score ranks it from 0
// to 100 against the other opportunities of the same report.
type Opportunity struct {
	Keyword      string                `json:"keyword"`
	Group        string                `json:"group"`
	URL          string                `json:"url"`
	Type         model.OpportunityType `json:"type"`
	Intent       model.Intent          `json:"intent"`
	Reason       string                `json:"reason"`
	Volume       int64                 `json:"volume"`
	Difficulty   int64                 `json:"difficulty"`
	UpliftClicks float64               `json:"uplift_clicks"`
	UpliftValue  float64               `json:"uplift_value"`
	Score        float64               `json:"score"`
	Position     int                   `json:"position"`
}

// GroupStats aggregates the keywords of one group.
type GroupStats struct {
	Group           string  `json:"group"`
	TotalVisibility float64 `json:"total_visibility"`
	AvgPosition     float64 `json:"avg_position"`
	Keywords        int     `json:"keywords"`
	Top10           int     `json:"top_10"`
}

// URLStats aggregates the ranking facts of one landing page.
type URLStats struct {
	URL             string  `json:"url"`
	TotalVisibility float64 `json:"total_visibility"`
	Keywords        int     `json:"keywords"`
	Top10           int     `json:"top_10"`
}

// EvolutionRow tracks one keyword across the recent imports of a project.
// Positions of 0 mean the domain had no position in that import.
type EvolutionRow struct {
	Keyword          string       `json:"keyword"`
	Group            string       `json:"group"`
	URL              string       `json:"url"`
	Intent           model.Intent `json:"intent"`
	Direction        model.Trend  `json:"direction"`
	Action           model.Action `json:"action"`
	Trend            []int        `json:"trend"`
	Value            float64      `json:"value"`
	Position         int          `json:"position"`
	PreviousPosition int          `json:"previous_position"`
	Delta            int          `json:"delta"`
	Branded          bool         `json:"branded"`
}

// KeywordEvolution is the evolution table of one import. Months labels the
// imports behind each Trend point, oldest first.
type KeywordEvolution struct {
	ImportID string         `json:"import_id"`
	Domain   string         `json:"domain"`
	Months   []string       `json:"months"`
	Rows     []EvolutionRow `json:"rows"`
}
