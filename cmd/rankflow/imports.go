package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rankflow/internal/cli"
	"github.com/Veraticus/rankflow/internal/common"
	"github.com/Veraticus/rankflow/internal/config"
	"github.com/Veraticus/rankflow/internal/model"
)

func importsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imports",
		Short: "Manage imported snapshots",
	}

	cmd.PersistentFlags().StringP("project", "p", "", "Project to operate on (default: report.project)")

	cmd.AddCommand(importsListCmd())
	cmd.AddCommand(importsDeleteCmd())

	return cmd
}

func importsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the project's imports, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			project := projectFlag(cmd)

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			imports, err := store.ListImports(ctx, project)
			if err != nil {
				return fmt.Errorf("failed to list imports: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(imports) == 0 {
				_, err := fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("No imports in project %q yet", project)))
				return err
			}

			_, err = fmt.Fprintln(out, cli.RenderBox(fmt.Sprintf("%s Imports: %s", cli.FolderIcon, project), formatImports(imports)))
			return err
		},
	}
}

func importsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <import-id|month>",
		Short: "Delete an import and every fact it recorded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			imp, err := resolveImport(ctx, store, projectFlag(cmd), args[0])
			if err != nil {
				return err
			}

			if err := store.DeleteImport(ctx, imp.ID); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError("Import already deleted", err)
				}
				return fmt.Errorf("failed to delete import: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted import %s (%s)", imp.MonthLabel, imp.ID)))
			return err
		},
	}
}

func projectFlag(cmd *cobra.Command) string {
	if project, _ := cmd.Flags().GetString("project"); project != "" {
		return project
	}
	return config.Load().Project
}

func formatImports(imports []model.Import) string {
	lines := make([]string, 0, len(imports)+1)
	lines = append(lines, cli.TableHeaderStyle.Render(fmt.Sprintf("%-10s %-36s %-16s %s", "Month", "ID", "Imported", "File")))
	for _, imp := range imports {
		lines = append(lines, fmt.Sprintf("%-10s %-36s %-16s %s",
			imp.MonthLabel, imp.ID, imp.CreatedAt.Local().Format("2006-01-02 15:04"), imp.Filename))
	}
	return strings.Join(lines, "\n")
}
