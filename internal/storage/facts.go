package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Veraticus/rankflow/internal/service"
)

// ListDomains returns the domains tracked by an import in discovery order.
func (s *SQLiteStorage) ListDomains(ctx context.Context, importID string) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(importID, "importID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT domain
		FROM domain_rankings
		WHERE import_id = ?
		GROUP BY domain
		ORDER BY MIN(rowid)
	`, importID)
	if err != nil {
		return nil, fmt.Errorf("failed to query domains: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var domains []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, d)
	}

	return domains, rows.Err()
}

// ListRankings returns ranking facts joined with their keyword and metric
// snapshot, in ingestion order.
func (s *SQLiteStorage) ListRankings(ctx context.Context, filter service.RankingFilter) ([]service.Fact, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if len(filter.ImportIDs) == 0 {
		return nil, fmt.Errorf("%w: importIDs", ErrEmptySlice)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.ImportIDs)), ",")
	args := make([]any, 0, len(filter.ImportIDs)+1)
	for _, id := range filter.ImportIDs {
		args = append(args, id)
	}

	// #nosec G202 - only placeholders are concatenated
	query := `
		SELECT r.import_id, k.id, k.text, k.group_label,
			m.volume, m.difficulty, m.cpc_avg,
			r.domain, r.visibility, r.position, r.out_of_top20, r.url
		FROM domain_rankings r
		JOIN keywords k ON k.id = r.keyword_id
		LEFT JOIN keyword_metrics m ON m.import_id = r.import_id AND m.keyword_id = r.keyword_id
		WHERE r.import_id IN (` + placeholders + `)`
	if filter.Domain != "" {
		query += ` AND r.domain = ?`
		args = append(args, filter.Domain)
	}
	query += ` ORDER BY r.rowid`

	return s.queryFacts(ctx, s.db, query, args...)
}

// ListKeywordFacts returns every keyword with a metric snapshot in the
// import, joined with its ranking on domain when one exists.
func (s *SQLiteStorage) ListKeywordFacts(ctx context.Context, importID, domain string) ([]service.Fact, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(importID, "importID"); err != nil {
		return nil, err
	}

	return s.queryFacts(ctx, s.db, `
		SELECT m.import_id, k.id, k.text, k.group_label,
			m.volume, m.difficulty, m.cpc_avg,
			r.domain, r.visibility, r.position, r.out_of_top20, r.url
		FROM keyword_metrics m
		JOIN keywords k ON k.id = m.keyword_id
		LEFT JOIN domain_rankings r
			ON r.import_id = m.import_id AND r.keyword_id = m.keyword_id AND r.domain = ?
		WHERE m.import_id = ?
		ORDER BY m.rowid
	`, domain, importID)
}

// MarketVisibility returns the summed visibility of every domain in an import.
func (s *SQLiteStorage) MarketVisibility(ctx context.Context, importID string) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(importID, "importID"); err != nil {
		return 0, err
	}

	var total float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(visibility), 0)
		FROM domain_rankings
		WHERE import_id = ?
	`, importID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum market visibility: %w", err)
	}

	return total, nil
}

func (s *SQLiteStorage) queryFacts(ctx context.Context, q queryable, query string, args ...any) ([]service.Fact, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query facts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var facts []service.Fact
	for rows.Next() {
		var (
			f          service.Fact
			volume     sql.NullInt64
			difficulty sql.NullInt64
			cpc        sql.NullFloat64
			domain     sql.NullString
			visibility sql.NullFloat64
			position   sql.NullInt64
			outOfTop20 sql.NullBool
			url        sql.NullString
		)

		if err := rows.Scan(
			&f.ImportID, &f.KeywordID, &f.Keyword, &f.Group,
			&volume, &difficulty, &cpc,
			&domain, &visibility, &position, &outOfTop20, &url,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fact: %w", err)
		}

		f.Volume = int64Ptr(volume)
		f.Difficulty = int64Ptr(difficulty)
		f.CPC = float64Ptr(cpc)
		f.Domain = domain.String
		f.Visibility = float64Ptr(visibility)
		if position.Valid {
			p := int(position.Int64)
			f.Position = &p
		}
		f.OutOfTop20 = outOfTop20.Bool
		if url.Valid {
			f.URL = &url.String
		}

		facts = append(facts, f)
	}

	return facts, rows.Err()
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func float64Ptr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
