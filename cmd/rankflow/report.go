package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rankflow/internal/analytics"
	"github.com/Veraticus/rankflow/internal/common"
	"github.com/Veraticus/rankflow/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the ranking report for an import",
		Long: `Show competitive ranking analytics for one import.

Views: summary, competitors, distribution, opportunities, groups, urls,
evolution, or all. Without --import the project's latest import is used;
without --domain the configured report.domain or the first domain found.`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}

	addReportFlags(cmd)
	cmd.Flags().String("view", string(report.ViewAll), "View to show")
	cmd.Flags().StringP("output", "o", "table", "Output format (table, json)")

	return cmd
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("import", "i", "", "Import id or month label (default: latest)")
	cmd.Flags().StringP("domain", "d", "", "Focal domain (default: report.domain)")
	cmd.Flags().StringP("project", "p", "", "Project (default: report.project)")
}

func runReport(cmd *cobra.Command, _ []string) error {
	viewName, _ := cmd.Flags().GetString("view")
	output, _ := cmd.Flags().GetString("output")

	view, err := report.ParseView(viewName)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Unknown view %q", viewName), err)
	}
	if output != "table" && output != "json" {
		return common.NewUserError(fmt.Sprintf("Unknown output format %q (use table or json)", output), common.ErrInvalidConfig)
	}

	r, err := buildReport(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if output == "json" {
		data, err := json.MarshalIndent(r.Section(view), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	_, err = fmt.Fprintln(out, report.NewCLIFormatter().Format(r, view))
	return err
}

// buildReport resolves the import and focal domain from the flags and
// assembles every view.
func buildReport(cmd *cobra.Command) (*report.Report, error) {
	ctx := cmd.Context()
	ref, _ := cmd.Flags().GetString("import")
	domain, _ := cmd.Flags().GetString("domain")

	store, err := initStorage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	imp, err := resolveImport(ctx, store, projectFlag(cmd), ref)
	if err != nil {
		return nil, err
	}

	domain, err = resolveDomain(ctx, store, imp.ID, domain)
	if err != nil {
		return nil, err
	}

	engine, err := analytics.NewEngine(store)
	if err != nil {
		return nil, err
	}

	r, err := report.Build(ctx, engine, imp.ID, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	return r, nil
}
