package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rankflow/internal/cli"
	"github.com/Veraticus/rankflow/internal/common"
	"github.com/Veraticus/rankflow/internal/config"
	"github.com/Veraticus/rankflow/internal/report"
	"github.com/Veraticus/rankflow/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export ranking reports to external destinations",
	}

	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Write the ranking report to Google Sheets",
		Long: `Write every report view to its own tab of a Google Sheets spreadsheet.

Uses sheets.spreadsheet_id when set, otherwise creates a new spreadsheet
named sheets.spreadsheet_name. Run 'rankflow auth sheets' first unless a
service account is configured.`,
		Args: cobra.NoArgs,
		RunE: runExportSheets,
	}

	addReportFlags(cmd)

	return cmd
}

func runExportSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return common.NewUserError("Google Sheets is not configured. Run 'rankflow auth sheets' or set sheets.service_account_path.", err)
	}

	r, err := buildReport(cmd)
	if err != nil {
		return err
	}

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	return exportReport(cmd, writer, r)
}

func exportReport(cmd *cobra.Command, writer report.Writer, r *report.Report) error {
	slog.Info(cli.FormatTitle("Exporting report"), "domain", r.Domain, "month", r.Import.MonthLabel)

	if err := writer.Write(cmd.Context(), r); err != nil {
		common.LogError(err, "Report export failed", common.Fields{
			"domain":    r.Domain,
			"import_id": r.Import.ID,
		})
		return fmt.Errorf("failed to export report: %w", err)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %s report for %s", r.Import.MonthLabel, r.Domain)))
	return err
}
