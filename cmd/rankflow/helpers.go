package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/rankflow/internal/common"
	"github.com/Veraticus/rankflow/internal/config"
	"github.com/Veraticus/rankflow/internal/model"
	"github.com/Veraticus/rankflow/internal/service"
	"github.com/Veraticus/rankflow/internal/storage"
)

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.Load().DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// resolveImport finds the import named by ref, which may be an import id or
// a month label within the project. An empty ref selects the project's
// latest import.
func resolveImport(ctx context.Context, store service.FactReader, project, ref string) (*model.Import, error) {
	if ref != "" {
		imp, err := store.GetImport(ctx, ref)
		if err == nil {
			return imp, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}

	imports, err := store.ListImports(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	if len(imports) == 0 {
		return nil, common.NewUserError(
			fmt.Sprintf("No imports found for project %q. Run 'rankflow import' first.", project),
			common.ErrNotFound)
	}

	if ref == "" {
		latest := imports[len(imports)-1]
		return &latest, nil
	}

	// The most recent import wins when a month was imported more than once.
	for i := len(imports) - 1; i >= 0; i-- {
		if imports[i].MonthLabel == ref {
			return &imports[i], nil
		}
	}

	return nil, common.NewUserError(
		fmt.Sprintf("No import %q in project %q. Run 'rankflow imports list' to see what exists.", ref, project),
		common.ErrNotFound)
}

// resolveDomain picks the focal domain: the explicit value, then the
// configured default, then the first domain discovered in the import.
func resolveDomain(ctx context.Context, store service.FactReader, importID, domain string) (string, error) {
	if domain != "" {
		return domain, nil
	}
	if d := config.Load().Domain; d != "" {
		return d, nil
	}

	domains, err := store.ListDomains(ctx, importID)
	if err != nil {
		return "", fmt.Errorf("failed to list domains: %w", err)
	}
	if len(domains) == 0 {
		return "", common.NewUserError("The import has no domain rankings. Pass --domain explicitly.", nil)
	}
	return domains[0], nil
}
