// Package config loads rankflow settings from Viper.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default settings.
const (
	DefaultDatabasePath = "$HOME/.local/share/rankflow/rankflow.db"
	DefaultProject      = "default"
)

// Settings holds the application settings shared by every command.
type Settings struct {
	DatabasePath    string
	Project         string
	Domain          string
	MetricsTextfile string
}

// Load reads the settings from Viper and expands every path.
func Load() Settings {
	s := Settings{
		DatabasePath:    viper.GetString("database.path"),
		Project:         viper.GetString("report.project"),
		Domain:          viper.GetString("report.domain"),
		MetricsTextfile: viper.GetString("metrics.textfile"),
	}

	if s.DatabasePath == "" {
		s.DatabasePath = DefaultDatabasePath
	}
	if s.Project == "" {
		s.Project = DefaultProject
	}

	s.DatabasePath = ExpandPath(s.DatabasePath)
	s.MetricsTextfile = ExpandPath(s.MetricsTextfile)

	return s
}

// ExpandPath expands $VARS and a leading ~ in a file path.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
