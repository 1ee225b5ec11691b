// Package report assembles the analytics views of an import into one
// report and renders it for the terminal.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/rankflow/internal/analytics"
	"github.com/Veraticus/rankflow/internal/model"
)

// View selects a section of a report.
type View string

// Report views.
const (
	ViewSummary       View = "summary"
	ViewCompetitors   View = "competitors"
	ViewDistribution  View = "distribution"
	ViewOpportunities View = "opportunities"
	ViewGroups        View = "groups"
	ViewURLs          View = "urls"
	ViewEvolution     View = "evolution"
	ViewAll           View = "all"
)

// Views lists the individual sections in display order.
var Views = []View{
	ViewSummary, ViewCompetitors, ViewDistribution, ViewOpportunities,
	ViewGroups, ViewURLs, ViewEvolution,
}

// ParseView resolves a view name, case-insensitively.
func ParseView(name string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(name)))
	if v == ViewAll {
		return v, nil
	}
	for _, known := range Views {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", name)
}

// Analyzer is the read side a report is built from.
type Analyzer interface {
	Import(ctx context.Context, importID string) (*model.Import, error)
	ExecutiveSummary(ctx context.Context, importID, domain string) (*analytics.ExecutiveSummary, error)
	CompetitorBenchmark(ctx context.Context, importID string) (*analytics.CompetitorBenchmark, error)
	RankingDistribution(ctx context.Context, importID, domain string) (*analytics.Distribution, error)
	Opportunities(ctx context.Context, importID, domain string) ([]analytics.Opportunity, error)
	GroupRollup(ctx context.Context, importID, domain string) ([]analytics.GroupStats, error)
	URLRollup(ctx context.Context, importID, domain string) ([]analytics.URLStats, error)
	KeywordEvolution(ctx context.Context, importID, domain string) (*analytics.KeywordEvolution, error)
}

// Writer exports a finished report to an external destination.
type Writer interface {
	Write(ctx context.Context, report *Report) error
}

// Report holds every view of one import for one focal domain.
type Report struct {
	GeneratedAt   time.Time                      `json:"generated_at"`
	Import        model.Import                   `json:"import"`
	Summary       *analytics.ExecutiveSummary    `json:"summary"`
	Competitors   *analytics.CompetitorBenchmark `json:"competitors"`
	Distribution  *analytics.Distribution        `json:"distribution"`
	Evolution     *analytics.KeywordEvolution    `json:"evolution"`
	Domain        string                         `json:"domain"`
	Opportunities []analytics.Opportunity        `json:"opportunities"`
	Groups        []analytics.GroupStats         `json:"groups"`
	URLs          []analytics.URLStats           `json:"urls"`
}

// Build computes every view of importID for domain.
func Build(ctx context.Context, a Analyzer, importID, domain string) (*Report, error) {
	imp, err := a.Import(ctx, importID)
	if err != nil {
		return nil, err
	}

	r := &Report{
		GeneratedAt: time.Now(),
		Import:      *imp,
		Domain:      domain,
	}

	if r.Summary, err = a.ExecutiveSummary(ctx, importID, domain); err != nil {
		return nil, fmt.Errorf("executive summary: %w", err)
	}
	if r.Competitors, err = a.CompetitorBenchmark(ctx, importID); err != nil {
		return nil, fmt.Errorf("competitor benchmark: %w", err)
	}
	if r.Distribution, err = a.RankingDistribution(ctx, importID, domain); err != nil {
		return nil, fmt.Errorf("ranking distribution: %w", err)
	}
	if r.Opportunities, err = a.Opportunities(ctx, importID, domain); err != nil {
		return nil, fmt.Errorf("opportunities: %w", err)
	}
	if r.Groups, err = a.GroupRollup(ctx, importID, domain); err != nil {
		return nil, fmt.Errorf("group rollup: %w", err)
	}
	if r.URLs, err = a.URLRollup(ctx, importID, domain); err != nil {
		return nil, fmt.Errorf("url rollup: %w", err)
	}
	if r.Evolution, err = a.KeywordEvolution(ctx, importID, domain); err != nil {
		return nil, fmt.Errorf("keyword evolution: %w", err)
	}

	return r, nil
}

// Section returns the payload of a single view. ViewAll returns the report.
func (r *Report) Section(v View) any {
	switch v {
	case ViewSummary:
		return r.Summary
	case ViewCompetitors:
		return r.Competitors
	case ViewDistribution:
		return r.Distribution
	case ViewOpportunities:
		return r.Opportunities
	case ViewGroups:
		return r.Groups
	case ViewURLs:
		return r.URLs
	case ViewEvolution:
		return r.Evolution
	default:
		return r
	}
}
