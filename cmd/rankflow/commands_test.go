package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rankflow/internal/analytics"
	"github.com/Veraticus/rankflow/internal/common"
	"github.com/Veraticus/rankflow/internal/ingest"
	"github.com/Veraticus/rankflow/internal/report"
	"github.com/Veraticus/rankflow/internal/sheets"
	"github.com/Veraticus/rankflow/internal/testutil"
)

// setupConfig points the database at a temporary directory.
func setupConfig(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dbPath := filepath.Join(t.TempDir(), "rankflow.db")
	viper.Set("database.path", dbPath)
	return dbPath
}

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestImportListReportDelete(t *testing.T) {
	setupConfig(t)
	export := writeExport(t, testutil.SampleExport())

	out, err := execute(t, importCmd(), export, "--month", "2024-05", "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Import complete")
	assert.Contains(t, out, "acme.com, rival.io")

	out, err = execute(t, importsCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-05")
	assert.Contains(t, out, "export.csv")

	out, err = execute(t, reportCmd(), "--view", "summary", "--output", "json", "--domain", "acme.com")
	require.NoError(t, err)
	var summary analytics.ExecutiveSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "acme.com", summary.Domain)
	assert.Equal(t, 3, summary.Keywords)
	assert.InDelta(t, 46.5, summary.TotalVisibility, 0.001)

	out, err = execute(t, reportCmd(), "--view", "competitors", "--import", "2024-05")
	require.NoError(t, err)
	assert.Contains(t, out, "rival.io")

	out, err = execute(t, importsCmd(), "delete", "2024-05")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted import 2024-05")

	out, err = execute(t, importsCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No imports")
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    []string
		want    string
	}{
		{
			name:    "empty export",
			content: "",
			args:    []string{"--month", "2024-05"},
			want:    "no keyword rows",
		},
		{
			name:    "missing keyword column",
			content: "Volume;Difficulty\n100;20\n",
			args:    []string{"--month", "2024-05"},
			want:    "could not be read",
		},
		{
			name:    "blank month",
			content: testutil.SampleExport(),
			args:    []string{"--month", " "},
			want:    "Invalid import request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupConfig(t)
			args := append([]string{writeExport(t, tt.content), "--no-progress"}, tt.args...)

			_, err := execute(t, importCmd(), args...)
			require.Error(t, err)

			var userErr *common.UserError
			require.True(t, errors.As(err, &userErr), "expected user error, got %v", err)
			assert.Contains(t, userErr.UserMessage, tt.want)
		})
	}
}

func TestImportMissingFile(t *testing.T) {
	setupConfig(t)

	_, err := execute(t, importCmd(), filepath.Join(t.TempDir(), "nope.csv"), "--month", "2024-05")
	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImportWritesMetricsTextfile(t *testing.T) {
	setupConfig(t)
	textfile := filepath.Join(t.TempDir(), "rankflow.prom")
	viper.Set("metrics.textfile", textfile)

	_, err := execute(t, importCmd(), writeExport(t, testutil.SampleExport()), "--month", "2024-05", "--no-progress")
	require.NoError(t, err)

	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rankflow_imports_total")
}

func TestReportRejectsUnknownFlags(t *testing.T) {
	setupConfig(t)

	_, err := execute(t, reportCmd(), "--view", "charts")
	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
	assert.Contains(t, userErr.UserMessage, "Unknown view")

	_, err = execute(t, reportCmd(), "--output", "pdf")
	require.True(t, errors.As(err, &userErr))
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestReportWithoutImports(t *testing.T) {
	setupConfig(t)

	_, err := execute(t, reportCmd())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMigrateStatus(t *testing.T) {
	dbPath := setupConfig(t)

	out, err := execute(t, migrateCmd(), "--status")
	require.NoError(t, err)
	assert.Regexp(t, `Current version:\s+0`, out)
	assert.Contains(t, out, "pending")

	_, err = execute(t, migrateCmd())
	require.NoError(t, err)

	out, err = execute(t, migrateCmd(), "--status")
	require.NoError(t, err)
	assert.Regexp(t, `Current version:\s+2`, out)
	assert.Contains(t, out, "up to date")
	assert.Contains(t, out, dbPath)
}

func TestExportReport(t *testing.T) {
	mock := sheets.NewMockWriter()
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	r := &report.Report{Domain: "acme.com"}
	r.Import.MonthLabel = "2024-05"

	require.NoError(t, exportReport(cmd, mock, r))
	assert.Same(t, r, mock.LastReport)
	assert.Contains(t, out.String(), "Exported 2024-05 report for acme.com")

	mock.SetWriteError(common.ErrSheetsRateLimit)
	err := exportReport(cmd, mock, r)
	assert.ErrorIs(t, err, common.ErrSheetsRateLimit)
}

func TestExportSheetsRequiresConfig(t *testing.T) {
	setupConfig(t)
	for _, env := range []string{
		"GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_CLIENT_SECRET", "GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
	} {
		t.Setenv(env, "")
	}

	_, err := execute(t, exportCmd(), "sheets")
	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
	assert.Contains(t, userErr.UserMessage, "not configured")
}

func TestAuthSheetsRequiresCredentials(t *testing.T) {
	setupConfig(t)
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")

	_, err := execute(t, authCmd(), "sheets")
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestConfigDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir, err := configDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "rankflow"), dir)
}

func TestSaveConfig(t *testing.T) {
	setupConfig(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	viper.Set("sheets.refresh_token", "refresh")

	require.NoError(t, saveConfig())

	dir, err := configDir()
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "refresh_token: refresh")
}

func TestFormatImportSummary(t *testing.T) {
	out := formatImportSummary(&ingest.Summary{
		ImportID:   "imp-1",
		Domains:    []string{"acme.com"},
		Rows:       5,
		Keywords:   3,
		Duplicates: 2,
	}, "default", "2024-05")

	assert.Contains(t, out, "3 (5 rows)")
	assert.Contains(t, out, "2 duplicate keyword rows ignored")
	assert.NotContains(t, out, "skipped")
	assert.NotContains(t, out, "recovered")
	assert.Contains(t, out, "imp-1")

	out = formatImportSummary(&ingest.Summary{ImportID: "imp-2", Rows: 3, Keywords: 3, Recovered: 3}, "default", "2024-05")
	assert.Contains(t, out, "3 rows recovered from an unclosed quote")
}
