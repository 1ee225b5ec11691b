package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial fact schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS imports (
					id TEXT PRIMARY KEY,
					project_id TEXT NOT NULL,
					month_label TEXT NOT NULL,
					filename TEXT NOT NULL,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_imports_project ON imports(project_id, created_at)`,

				`CREATE TABLE IF NOT EXISTS keywords (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					project_id TEXT NOT NULL,
					text TEXT NOT NULL,
					normalized_text TEXT NOT NULL,
					group_label TEXT NOT NULL DEFAULT 'ungrouped',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(project_id, normalized_text)
				)`,

				`CREATE TABLE IF NOT EXISTS keyword_metrics (
					import_id TEXT NOT NULL,
					keyword_id INTEGER NOT NULL,
					difficulty INTEGER,
					volume INTEGER,
					impressions INTEGER,
					ctr REAL,
					competition TEXT,
					cpc_avg REAL,
					cpc_min REAL,
					cpc_max REAL,
					trend_3m TEXT,
					PRIMARY KEY (import_id, keyword_id),
					FOREIGN KEY (import_id) REFERENCES imports(id) ON DELETE CASCADE,
					FOREIGN KEY (keyword_id) REFERENCES keywords(id)
				)`,

				`CREATE TABLE IF NOT EXISTS domain_rankings (
					import_id TEXT NOT NULL,
					keyword_id INTEGER NOT NULL,
					domain TEXT NOT NULL,
					visibility REAL,
					position INTEGER,
					out_of_top20 BOOLEAN NOT NULL DEFAULT 0,
					url TEXT,
					PRIMARY KEY (import_id, keyword_id, domain),
					FOREIGN KEY (import_id) REFERENCES imports(id) ON DELETE CASCADE,
					FOREIGN KEY (keyword_id) REFERENCES keywords(id)
				)`,
				`CREATE INDEX idx_domain_rankings_import_domain ON domain_rankings(import_id, domain)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Index keyword history lookups",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX idx_domain_rankings_keyword ON domain_rankings(keyword_id, domain)`,
				`CREATE INDEX idx_keyword_metrics_keyword ON keyword_metrics(keyword_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion returns the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
