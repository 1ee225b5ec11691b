package model

import "time"

// Import is one monthly ingestion run. Every metric snapshot and domain
// ranking fact belongs to exactly one import.
type Import struct {
	CreatedAt  time.Time `json:"created_at"`
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	MonthLabel string    `json:"month_label"`
	Filename   string    `json:"filename"`
}

// MetricSnapshot holds the demand metrics of one keyword in one import.
// A nil field means the export had no data for it.
type MetricSnapshot struct {
	Difficulty  *int64
	Volume      *int64
	Impressions *int64
	CTR         *float64
	Competition *string
	CPCAvg      *float64
	CPCMin      *float64
	CPCMax      *float64
	Trend3M     *string
	ImportID    string
	KeywordID   int64
}

// DomainRanking is the ranking fact of one domain for one keyword in one import.
type DomainRanking struct {
	Visibility *float64
	Position   *int
	URL        *string
	ImportID   string
	Domain     string
	KeywordID  int64
	OutOfTop20 bool
}

// IsOutOfTop20 reports whether the fact sits outside the tracked window,
// either flagged by the export or ranked beyond position 20.
func (r DomainRanking) IsOutOfTop20() bool {
	return r.OutOfTop20 || (r.Position != nil && *r.Position > 20)
}
