package model

// RankingCell is the parsed per-domain part of an export row.
type RankingCell struct {
	Visibility *float64
	Position   *int
	URL        *string
	OutOfTop20 bool
}

// Record is one canonical keyword row produced by the CSV normalizer.
// Rankings is keyed by the domains discovered in the export header.
type Record struct {
	Rankings    map[string]RankingCell
	Difficulty  *int64
	Volume      *int64
	Impressions *int64
	CTR         *float64
	Competition *string
	CPCAvg      *float64
	CPCMin      *float64
	CPCMax      *float64
	Trend3M     *string
	Keyword     string
	Group       string
}

// GroupLabel returns the record's group, defaulting to UngroupedLabel.
func (r Record) GroupLabel() string {
	return GroupOrDefault(r.Group)
}

// Snapshot converts the record's demand metrics into a MetricSnapshot.
func (r Record) Snapshot(importID string, keywordID int64) MetricSnapshot {
	return MetricSnapshot{
		ImportID:    importID,
		KeywordID:   keywordID,
		Difficulty:  r.Difficulty,
		Volume:      r.Volume,
		Impressions: r.Impressions,
		CTR:         r.CTR,
		Competition: r.Competition,
		CPCAvg:      r.CPCAvg,
		CPCMin:      r.CPCMin,
		CPCMax:      r.CPCMax,
		Trend3M:     r.Trend3M,
	}
}

// DomainRankings converts the record's ranking cells into facts, ordered by domains.
func (r Record) DomainRankings(importID string, keywordID int64, domains []string) []DomainRanking {
	facts := make([]DomainRanking, 0, len(domains))
	for _, domain := range domains {
		cell, ok := r.Rankings[domain]
		if !ok {
			continue
		}
		facts = append(facts, DomainRanking{
			ImportID:   importID,
			KeywordID:  keywordID,
			Domain:     domain,
			Visibility: cell.Visibility,
			Position:   cell.Position,
			OutOfTop20: cell.OutOfTop20,
			URL:        cell.URL,
		})
	}
	return facts
}
