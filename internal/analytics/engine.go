// Package analytics derives reporting views from the persisted ranking facts
// of an import.
package analytics

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/Veraticus/rankflow/internal/common"
	"github.com/Veraticus/rankflow/internal/model"
	"github.com/Veraticus/rankflow/internal/scoring"
	"github.com/Veraticus/rankflow/internal/service"
)

// Engine computes read-only views over a fact store. Every method is
// scoped by import id and safe for concurrent use.
type Engine struct {
	store service.FactReader
}

// NewEngine creates an aggregation engine reading from store.
func NewEngine(store service.FactReader) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("fact reader dependency is required")
	}
	return &Engine{store: store}, nil
}

// Import returns the metadata of an import. An unknown id yields
// common.ErrNotFound.
func (e *Engine) Import(ctx context.Context, importID string) (*model.Import, error) {
	if importID == "" {
		return nil, common.NewValidationError("importID", "is required")
	}
	imp, err := e.store.GetImport(ctx, importID)
	if err != nil {
		return nil, fmt.Errorf("failed to load import: %w", err)
	}
	return imp, nil
}

// ExecutiveSummary computes the headline KPIs of domain in an import.
func (e *Engine) ExecutiveSummary(ctx context.Context, importID, domain string) (*ExecutiveSummary, error) {
	if err := validateScope(importID, domain); err != nil {
		return nil, err
	}

	facts, err := e.rankings(ctx, importID, domain)
	if err != nil {
		return nil, err
	}
	market, err := e.store.MarketVisibility(ctx, importID)
	if err != nil {
		return nil, fmt.Errorf("failed to load market visibility: %w", err)
	}

	_, acc := rollup(facts, func(service.Fact) (string, bool) { return domain, true }, withinWindow)
	summary := &ExecutiveSummary{ImportID: importID, Domain: domain}
	if s, ok := acc[domain]; ok {
		summary.Keywords = s.facts
		summary.TotalVisibility = s.visibility
		summary.Top3 = s.top3
		summary.Top10 = s.top10
		summary.Top20 = s.top20
		summary.OutOfTop20 = s.outOfTop20
		summary.StrikingDistance = s.striking
		summary.AvgPosition = s.avgPosition()
	}
	summary.ShareOfVoice = shareOf(summary.TotalVisibility, market)

	for _, f := range facts {
		if f.Position == nil || f.IsOutOfTop20() {
			continue
		}
		clicks := scoring.EstimateClicks(*f.Position, deref(f.Volume))
		summary.EstimatedTraffic += clicks
		summary.EstimatedValue += clicks * deref(f.CPC)
	}

	return summary, nil
}

// CompetitorBenchmark computes the summary shape for every domain of an
// import, sorted by total visibility.
func (e *Engine) CompetitorBenchmark(ctx context.Context, importID string) (*CompetitorBenchmark, error) {
	if importID == "" {
		return nil, common.NewValidationError("importID", "is required")
	}

	facts, err := e.rankings(ctx, importID, "")
	if err != nil {
		return nil, err
	}

	order, acc := rollup(facts, func(f service.Fact) (string, bool) { return f.Domain, true }, upToTop20)

	bench := &CompetitorBenchmark{Domains: make([]DomainBenchmark, 0, len(order))}
	for _, d := range order {
		bench.MarketVisibility += acc[d].visibility
	}

	shares := make([]float64, 0, len(order))
	for _, d := range order {
		s := acc[d]
		row := DomainBenchmark{
			Domain:           d,
			TotalVisibility:  s.visibility,
			ShareOfVoice:     shareOf(s.visibility, bench.MarketVisibility),
			AvgPosition:      s.avgPosition(),
			Keywords:         s.facts,
			Top3:             s.top3,
			Top10:            s.top10,
			Top20:            s.top20,
			OutOfTop20:       s.outOfTop20,
			StrikingDistance: s.striking,
		}
		bench.Domains = append(bench.Domains, row)
		shares = append(shares, row.ShareOfVoice)
	}
	slices.SortStableFunc(bench.Domains, func(a, b DomainBenchmark) int {
		return byVisibility(a.TotalVisibility, b.TotalVisibility, a.Domain, b.Domain)
	})

	bench.HHI, bench.Concentration = scoring.Concentration(shares)
	return bench, nil
}

// RankingDistribution counts the domain's facts in exclusive position
// buckets. Unranked facts land in Beyond20.
func (e *Engine) RankingDistribution(ctx context.Context, importID, domain string) (*Distribution, error) {
	if err := validateScope(importID, domain); err != nil {
		return nil, err
	}

	facts, err := e.rankings(ctx, importID, domain)
	if err != nil {
		return nil, err
	}

	var dist Distribution
	for _, f := range facts {
		switch {
		case f.IsOutOfTop20(), f.Position == nil:
			dist.Beyond20++
		case *f.Position <= 3:
			dist.Top3++
		case *f.Position <= 10:
			dist.Top4To10++
		default:
			dist.Top11To20++
		}
	}

	return &dist, nil
}

// Opportunities lists the domain's keywords ranked 4 to 20, highest volume
// first.
func (e *Engine) Opportunities(ctx context.Context, importID, domain string) ([]Opportunity, error) {
	if err := validateScope(importID, domain); err != nil {
		return nil, err
	}

	facts, err := e.rankings(ctx, importID, domain)
	if err != nil {
		return nil, err
	}

	opps := []Opportunity{}
	var inputs []scoring.OpportunityInput
	for _, f := range facts {
		if f.Position == nil || *f.Position < 4 || *f.Position > 20 {
			continue
		}
		pos := *f.Position
		volume, cpc := deref(f.Volume), deref(f.CPC)
		clicks := scoring.UpliftClicks(pos, volume)
		value := scoring.EstimateUplift(pos, volume, cpc)
		opp := Opportunity{
			Keyword:      f.Keyword,
			Group:        f.Group,
			URL:          derefString(f.URL),
			Type:         opportunityType(pos),
			Intent:       scoring.ClassifyIntent(f.Keyword),
			Reason:       scoring.OpportunityReason(pos, clicks, value),
			Volume:       volume,
			Difficulty:   deref(f.Difficulty),
			UpliftClicks: clicks,
			UpliftValue:  value,
			Position:     pos,
		}
		opps = append(opps, opp)
		inputs = append(inputs, scoring.OpportunityInput{
			UpliftClicks: clicks,
			CPC:          cpc,
			Volume:       volume,
			Difficulty:   opp.Difficulty,
		})
	}
	for i, score := range scoring.OpportunityScore(inputs) {
		opps[i].Score = score
	}

	slices.SortStableFunc(opps, func(a, b Opportunity) int {
		if c := cmp.Compare(b.Volume, a.Volume); c != 0 {
			return c
		}
		return cmp.Compare(a.Position, b.Position)
	})

	return opps, nil
}

// GroupRollup aggregates every keyword of an import by group label.
func (e *Engine) GroupRollup(ctx context.Context, importID, domain string) ([]GroupStats, error) {
	if err := validateScope(importID, domain); err != nil {
		return nil, err
	}
	return e.GroupRollupAcross(ctx, domain, importID)
}

// GroupRollupAcross aggregates the keywords of several imports by group
// label. Keywords count once per group however many imports track them.
func (e *Engine) GroupRollupAcross(ctx context.Context, domain string, importIDs ...string) ([]GroupStats, error) {
	if domain == "" {
		return nil, common.NewValidationError("domain", "is required")
	}
	if len(importIDs) == 0 {
		return nil, common.NewValidationError("importIDs", "at least one import is required")
	}

	var facts []service.Fact
	for _, id := range importIDs {
		batch, err := e.store.ListKeywordFacts(ctx, id, domain)
		if err != nil {
			return nil, fmt.Errorf("failed to load keyword facts for import %s: %w", id, err)
		}
		facts = append(facts, batch...)
	}

	order, acc := rollup(facts, func(f service.Fact) (string, bool) { return f.Group, true }, anyPosition)

	groups := make([]GroupStats, 0, len(order))
	for _, g := range order {
		s := acc[g]
		groups = append(groups, GroupStats{
			Group:           g,
			TotalVisibility: s.visibility,
			AvgPosition:     s.avgPosition(),
			Keywords:        len(s.keywords),
			Top10:           s.top10,
		})
	}
	slices.SortStableFunc(groups, func(a, b GroupStats) int {
		return byVisibility(a.TotalVisibility, b.TotalVisibility, a.Group, b.Group)
	})

	return groups, nil
}

// URLRollup aggregates the domain's ranking facts by landing page. Facts
// without a URL are left out.
func (e *Engine) URLRollup(ctx context.Context, importID, domain string) ([]URLStats, error) {
	if err := validateScope(importID, domain); err != nil {
		return nil, err
	}

	facts, err := e.rankings(ctx, importID, domain)
	if err != nil {
		return nil, err
	}

	order, acc := rollup(facts, func(f service.Fact) (string, bool) {
		if f.URL == nil || *f.URL == "" {
			return "", false
		}
		return *f.URL, true
	}, anyPosition)

	urls := make([]URLStats, 0, len(order))
	for _, u := range order {
		s := acc[u]
		urls = append(urls, URLStats{
			URL:             u,
			TotalVisibility: s.visibility,
			Keywords:        s.facts,
			Top10:           s.top10,
		})
	}
	slices.SortStableFunc(urls, func(a, b URLStats) int {
		return byVisibility(a.TotalVisibility, b.TotalVisibility, a.URL, b.URL)
	})

	return urls, nil
}

func (e *Engine) rankings(ctx context.Context, importID, domain string) ([]service.Fact, error) {
	facts, err := e.store.ListRankings(ctx, service.RankingFilter{
		ImportIDs: []string{importID},
		Domain:    domain,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load rankings: %w", err)
	}
	return facts, nil
}

func validateScope(importID, domain string) error {
	if importID == "" {
		return common.NewValidationError("importID", "is required")
	}
	if domain == "" {
		return common.NewValidationError("domain", "is required")
	}
	return nil
}

func opportunityType(position int) model.OpportunityType {
	if position <= 10 {
		return model.OpportunityQuickWin
	}
	return model.OpportunityStrikingDistance
}

// byVisibility orders by visibility descending, then name ascending.
func byVisibility(va, vb float64, na, nb string) int {
	if c := cmp.Compare(vb, va); c != 0 {
		return c
	}
	return cmp.Compare(na, nb)
}

func deref[T int64 | float64](p *T) T {
	if p == nil {
		return 0
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
