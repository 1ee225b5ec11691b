package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/rankflow/internal/common"
	"github.com/Veraticus/rankflow/internal/model"
)

func (s *SQLiteStorage) createImportTx(ctx context.Context, q queryable, imp *model.Import) error {
	if imp.CreatedAt.IsZero() {
		imp.CreatedAt = time.Now()
	}
	imp.CreatedAt = imp.CreatedAt.UTC()

	_, err := q.ExecContext(ctx, `
		INSERT INTO imports (id, project_id, month_label, filename, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, imp.ID, imp.ProjectID, imp.MonthLabel, imp.Filename, imp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create import %s: %w", imp.ID, err)
	}
	return nil
}

// GetImport retrieves an import by ID.
func (s *SQLiteStorage) GetImport(ctx context.Context, id string) (*model.Import, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var imp model.Import
	err := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, month_label, filename, created_at
		FROM imports
		WHERE id = ?
	`, id).Scan(&imp.ID, &imp.ProjectID, &imp.MonthLabel, &imp.Filename, &imp.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("import %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get import: %w", err)
	}

	return &imp, nil
}

// ListImports returns the imports of a project, oldest first.
func (s *SQLiteStorage) ListImports(ctx context.Context, projectID string) ([]model.Import, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(projectID, "projectID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, month_label, filename, created_at
		FROM imports
		WHERE project_id = ?
		ORDER BY created_at, rowid
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var imports []model.Import
	for rows.Next() {
		var imp model.Import
		if err := rows.Scan(&imp.ID, &imp.ProjectID, &imp.MonthLabel, &imp.Filename, &imp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		imports = append(imports, imp)
	}

	return imports, rows.Err()
}

// DeleteImport removes an import together with the facts it owns.
// Keywords are shared across imports and are kept.
func (s *SQLiteStorage) DeleteImport(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, query := range []string{
		`DELETE FROM domain_rankings WHERE import_id = ?`,
		`DELETE FROM keyword_metrics WHERE import_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete import facts: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM imports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete import: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("import %s: %w", id, common.ErrNotFound)
	}

	return tx.Commit()
}
