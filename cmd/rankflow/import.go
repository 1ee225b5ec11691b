package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rankflow/internal/cli"
	"github.com/Veraticus/rankflow/internal/common"
	"github.com/Veraticus/rankflow/internal/config"
	"github.com/Veraticus/rankflow/internal/ingest"
	"github.com/Veraticus/rankflow/internal/metrics"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <export.csv>",
		Short: "Import a monthly keyword ranking export",
		Long: `Import a keyword ranking CSV export as a new monthly snapshot.

The delimiter, locale-specific number formats and per-domain columns are
detected automatically. The whole file is stored in one transaction: an
interrupted or failed import leaves nothing behind.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringP("month", "m", "", "Month label for this snapshot, e.g. 2024-05 (required)")
	cmd.Flags().StringP("project", "p", "", "Project the export belongs to (default: report.project)")
	cmd.Flags().Bool("no-progress", false, "Disable the progress bar")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	settings := config.Load()
	month, _ := cmd.Flags().GetString("month")
	project, _ := cmd.Flags().GetString("project")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	if project == "" {
		project = settings.Project
	}

	path := config.ExpandPath(args[0])
	file, err := os.Open(path) //nolint:gosec // path is supplied by the user on purpose
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Cannot open %s", path), err)
	}
	defer func() { _ = file.Close() }()

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := interrupts.HandleInterrupts(cmd.Context(), "Import", true)

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	collector := metrics.New()
	opts := []ingest.Option{ingest.WithMetrics(collector)}
	if !noProgress {
		opts = append(opts, ingest.WithProgress(cli.ProgressReporter(cmd.ErrOrStderr(), "Saving keywords...")))
	}

	slog.Info(cli.FormatTitle("Importing " + filepath.Base(path)))

	summary, ingestErr := ingest.NewService(store, opts...).Ingest(ctx, ingest.Request{
		Content:    file,
		ProjectID:  project,
		MonthLabel: month,
		Filename:   filepath.Base(path),
	})

	if settings.MetricsTextfile != "" {
		if err := collector.WriteTextfile(settings.MetricsTextfile); err != nil {
			slog.Warn("Failed to write metrics", "error", err, "path", settings.MetricsTextfile)
		}
	}

	if ingestErr != nil {
		if interrupts.WasInterrupted() {
			return common.NewUserError("Import canceled", ingestErr)
		}
		return importError(ingestErr)
	}

	if _, err := fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(cli.SuccessIcon+" Import complete", formatImportSummary(summary, project, month))); err != nil {
		return err
	}
	return nil
}

func formatImportSummary(s *ingest.Summary, project, month string) string {
	lines := []string{cli.RenderFields(
		cli.Field{Label: "Project", Value: project},
		cli.Field{Label: "Month", Value: month},
		cli.Field{Label: "Keywords", Value: fmt.Sprintf("%d (%d rows)", s.Keywords, s.Rows)},
		cli.Field{Label: "Domains", Value: strings.Join(s.Domains, ", ")},
	)}
	if s.Duplicates > 0 {
		lines = append(lines, cli.FormatWarning(fmt.Sprintf("%d duplicate keyword rows ignored", s.Duplicates)))
	}
	if s.Skipped > 0 {
		lines = append(lines, cli.FormatWarning(fmt.Sprintf("%d rows without a keyword skipped", s.Skipped)))
	}
	if s.Recovered > 0 {
		lines = append(lines, cli.FormatWarning(fmt.Sprintf("%d rows recovered from an unclosed quote", s.Recovered)))
	}
	lines = append(lines, cli.SubtleStyle.Render("Import ID: "+s.ImportID))
	return strings.Join(lines, "\n")
}

// importError turns ingestion failures into messages that say what to fix.
func importError(err error) error {
	var (
		parseErr *common.ParseError
		emptyErr *common.EmptyInputError
		validErr *common.ValidationError
	)
	switch {
	case errors.As(err, &validErr):
		return common.NewUserError("Invalid import request", err)
	case errors.As(err, &emptyErr):
		return common.NewUserError("The export contains no keyword rows", err)
	case errors.As(err, &parseErr):
		return common.NewUserError("The export could not be read as a ranking CSV", err)
	default:
		return fmt.Errorf("import failed: %w", err)
	}
}
