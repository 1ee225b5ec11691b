package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rankflow/internal/cli"
	"github.com/Veraticus/rankflow/internal/config"
	"github.com/Veraticus/rankflow/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Every other command migrates on startup; run this to inspect the schema
version or to prepare a database ahead of time.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")
	dbPath := config.Load().DatabasePath

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()

	if status {
		current, err := store.SchemaVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		msg := cli.FormatSuccess("Schema is up to date")
		if current < storage.ExpectedSchemaVersion {
			msg = cli.FormatWarning(fmt.Sprintf("%d migration(s) pending. Run 'rankflow migrate'.", storage.ExpectedSchemaVersion-current))
		}
		_, err = fmt.Fprintln(out, cli.RenderBox(cli.FolderIcon+" Database Migration Status", cli.RenderFields(
			cli.Field{Label: "Database", Value: store.Path()},
			cli.Field{Label: "Current version", Value: strconv.Itoa(current)},
			cli.Field{Label: "Latest version", Value: strconv.Itoa(storage.ExpectedSchemaVersion)},
		)+"\n"+msg))
		return err
	}

	slog.Info("Running database migrations", "database", dbPath)

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	_, err = fmt.Fprintln(out, cli.FormatSuccess("Database migrations completed successfully!"))
	return err
}
