package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("RANKFLOW_TEST_DIR", "/data")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "tilde", input: "~", want: home},
		{name: "tilde prefix", input: "~/db/rankflow.db", want: filepath.Join(home, "db/rankflow.db")},
		{name: "env var", input: "$RANKFLOW_TEST_DIR/rankflow.db", want: "/data/rankflow.db"},
		{name: "absolute", input: "/var/lib/rankflow.db", want: "/var/lib/rankflow.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestLoad(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()

	s := Load()
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local/share/rankflow/rankflow.db"), s.DatabasePath)
	assert.Equal(t, DefaultProject, s.Project)
	assert.Empty(t, s.Domain)
	assert.Empty(t, s.MetricsTextfile)

	viper.Set("database.path", "/tmp/rf.db")
	viper.Set("report.project", "acme")
	viper.Set("report.domain", "acme.com")
	viper.Set("metrics.textfile", "/tmp/rankflow.prom")

	s = Load()
	assert.Equal(t, Settings{
		DatabasePath:    "/tmp/rf.db",
		Project:         "acme",
		Domain:          "acme.com",
		MetricsTextfile: "/tmp/rankflow.prom",
	}, s)
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()
	for _, env := range []string{
		"GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_CLIENT_SECRET", "GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(env, "")
	}

	_, err := LoadSheetsConfig()
	assert.Error(t, err)

	t.Setenv("RANKFLOW_TEST_KEYS", "/keys")
	viper.Set("sheets.service_account_path", "$RANKFLOW_TEST_KEYS/sa.json")
	viper.Set("sheets.spreadsheet_name", "SEO")
	viper.Set("sheets.batch_size", 50)

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
	assert.Equal(t, "SEO", cfg.SpreadsheetName)
	assert.Equal(t, 50, cfg.BatchSize)
}
