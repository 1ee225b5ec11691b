package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/rankflow/internal/model"
)

// upsertKeywordTx creates the keyword on first sighting within its project.
// An existing keyword keeps its group unless the new group is non-blank.
// The keyword is updated in place with its stored ID and group.
func (s *SQLiteStorage) upsertKeywordTx(ctx context.Context, q queryable, kw *model.Keyword) error {
	kw.Text = strings.TrimSpace(kw.Text)
	kw.NormalizedText = model.NormalizeKeyword(kw.Text)
	if kw.CreatedAt.IsZero() {
		kw.CreatedAt = time.Now()
	}

	err := q.QueryRowContext(ctx, `
		INSERT INTO keywords (project_id, text, normalized_text, group_label, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(project_id, normalized_text) DO UPDATE SET
			group_label = COALESCE(NULLIF(?, ''), keywords.group_label)
		RETURNING id, group_label
	`,
		kw.ProjectID,
		kw.Text,
		kw.NormalizedText,
		model.GroupOrDefault(kw.Group),
		kw.CreatedAt.UTC(),
		strings.TrimSpace(kw.Group),
	).Scan(&kw.ID, &kw.Group)
	if err != nil {
		return fmt.Errorf("failed to upsert keyword %q: %w", kw.Text, err)
	}

	return nil
}

func (s *SQLiteStorage) saveMetricSnapshotsTx(ctx context.Context, tx *sql.Tx, snapshots []model.MetricSnapshot) error {
	// A keyword repeated within one export keeps its first snapshot.
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO keyword_metrics (
			import_id, keyword_id, difficulty, volume, impressions, ctr,
			competition, cpc_avg, cpc_min, cpc_max, trend_3m
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, m := range snapshots {
		_, err = stmt.ExecContext(ctx,
			m.ImportID,
			m.KeywordID,
			m.Difficulty,
			m.Volume,
			m.Impressions,
			m.CTR,
			m.Competition,
			m.CPCAvg,
			m.CPCMin,
			m.CPCMax,
			m.Trend3M,
		)
		if err != nil {
			return fmt.Errorf("failed to insert metric snapshot for keyword %d: %w", m.KeywordID, err)
		}
	}

	return nil
}

func (s *SQLiteStorage) saveDomainRankingsTx(ctx context.Context, tx *sql.Tx, rankings []model.DomainRanking) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO domain_rankings (
			import_id, keyword_id, domain, visibility, position, out_of_top20, url
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range rankings {
		_, err = stmt.ExecContext(ctx,
			r.ImportID,
			r.KeywordID,
			r.Domain,
			r.Visibility,
			r.Position,
			r.IsOutOfTop20(),
			r.URL,
		)
		if err != nil {
			return fmt.Errorf("failed to insert ranking for keyword %d on %s: %w", r.KeywordID, r.Domain, err)
		}
	}

	return nil
}
