package analytics

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/Veraticus/rankflow/internal/model"
	"github.com/Veraticus/rankflow/internal/scoring"
	"github.com/Veraticus/rankflow/internal/service"
)

// trendWindow is the number of imports in an evolution trend sequence.
const trendWindow = 3

// KeywordEvolution joins the keywords of an import with their positions in
// the project's earlier imports. An unknown import yields common.ErrNotFound.
func (e *Engine) KeywordEvolution(ctx context.Context, importID, domain string) (*KeywordEvolution, error) {
	if err := validateScope(importID, domain); err != nil {
		return nil, err
	}

	current, err := e.store.GetImport(ctx, importID)
	if err != nil {
		return nil, fmt.Errorf("failed to load import: %w", err)
	}

	history, err := e.history(ctx, current)
	if err != nil {
		return nil, err
	}

	window := history[max(0, len(history)-trendWindow):]
	ids := make([]string, len(window))
	months := make([]string, len(window))
	for i, imp := range window {
		ids[i] = imp.ID
		months[i] = imp.MonthLabel
	}

	past, err := e.store.ListRankings(ctx, service.RankingFilter{ImportIDs: ids, Domain: domain})
	if err != nil {
		return nil, fmt.Errorf("failed to load ranking history: %w", err)
	}
	positions := make(map[int64]map[string]int)
	for _, f := range past {
		if f.Position == nil {
			continue
		}
		if positions[f.KeywordID] == nil {
			positions[f.KeywordID] = make(map[string]int)
		}
		positions[f.KeywordID][f.ImportID] = *f.Position
	}

	var previousID string
	if len(history) > 1 {
		previousID = history[len(history)-2].ID
	}

	facts, err := e.store.ListKeywordFacts(ctx, importID, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to load keyword facts: %w", err)
	}

	// A keyword naming any tracked domain's brand is branded, competitors included.
	brands, err := e.store.ListDomains(ctx, importID)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	if !slices.Contains(brands, domain) {
		brands = append(brands, domain)
	}

	rows := make([]EvolutionRow, 0, len(facts))
	for _, f := range facts {
		rows = append(rows, evolutionRow(f, brands, positions[f.KeywordID], ids, previousID))
	}
	slices.SortStableFunc(rows, func(a, b EvolutionRow) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Keyword, b.Keyword)
	})

	return &KeywordEvolution{
		ImportID: importID,
		Domain:   domain,
		Months:   months,
		Rows:     rows,
	}, nil
}

// history returns the project's imports up to and including current, oldest
// first.
func (e *Engine) history(ctx context.Context, current *model.Import) ([]model.Import, error) {
	imports, err := e.store.ListImports(ctx, current.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project imports: %w", err)
	}

	for i, imp := range imports {
		if imp.ID == current.ID {
			return imports[:i+1], nil
		}
	}
	return []model.Import{*current}, nil
}

func evolutionRow(f service.Fact, brands []string, positions map[string]int, window []string, previousID string) EvolutionRow {
	var pos int
	if f.Position != nil {
		pos = *f.Position
	}
	prev := positions[previousID]

	var delta int
	if pos > 0 && prev > 0 {
		delta = prev - pos
	}

	trend := make([]int, len(window))
	for i, id := range window {
		trend[i] = positions[id]
	}

	intent := scoring.ClassifyIntent(f.Keyword)
	direction := scoring.TrendFromDelta(delta)

	row := EvolutionRow{
		Keyword:          f.Keyword,
		Group:            f.Group,
		URL:              derefString(f.URL),
		Intent:           intent,
		Direction:        direction,
		Action:           scoring.RecommendAction(pos, direction, intent),
		Trend:            trend,
		Position:         pos,
		PreviousPosition: prev,
		Delta:            delta,
		Branded:          scoring.IsBranded(f.Keyword, brands...),
	}
	if pos > 0 {
		row.Value = scoring.EstimateUplift(pos, deref(f.Volume), deref(f.CPC))
	}

	return row
}
