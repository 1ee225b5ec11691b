// Package sheets exports ranking reports to Google Sheets.
package sheets

import (
	"fmt"
	"os"
	"time"

	"github.com/Veraticus/rankflow/internal/common"
)

// DefaultSpreadsheetName names spreadsheets created without an explicit name.
const DefaultSpreadsheetName = "Ranking Report"

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableFormatting: true,
		SpreadsheetName:  DefaultSpreadsheetName,
		TimeZone:         "UTC",
		BatchSize:        500,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
	}
}

// LoadFromEnv fills unset fields from GOOGLE_SHEETS_* environment variables.
func (c *Config) LoadFromEnv() {
	setIfEmpty(&c.ClientID, "GOOGLE_SHEETS_CLIENT_ID")
	setIfEmpty(&c.ClientSecret, "GOOGLE_SHEETS_CLIENT_SECRET")
	setIfEmpty(&c.RefreshToken, "GOOGLE_SHEETS_REFRESH_TOKEN")
	setIfEmpty(&c.ServiceAccountPath, "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH")
	setIfEmpty(&c.SpreadsheetID, "GOOGLE_SHEETS_SPREADSHEET_ID")

	if c.SpreadsheetName == "" || c.SpreadsheetName == DefaultSpreadsheetName {
		if v := os.Getenv("GOOGLE_SHEETS_SPREADSHEET_NAME"); v != "" {
			c.SpreadsheetName = v
		}
	}
}

func setIfEmpty(field *string, env string) {
	if *field == "" {
		*field = os.Getenv(env)
	}
}

// Validate checks that exactly one authentication method is configured and
// that the write settings are usable. Errors wrap common.ErrInvalidConfig.
func (c *Config) Validate() error {
	var problem string
	switch {
	case c.authMethods() == 0:
		problem = "no authentication method configured"
	case c.authMethods() > 1:
		problem = "multiple authentication methods configured; use either OAuth2 or service account"
	case c.BatchSize <= 0:
		problem = "batch size must be positive"
	case c.RetryAttempts < 0:
		problem = "retry attempts cannot be negative"
	case c.RetryDelay < 0:
		problem = "retry delay cannot be negative"
	default:
		return nil
	}
	return fmt.Errorf("%w: sheets: %s", common.ErrInvalidConfig, problem)
}

// usesOAuth reports whether a complete OAuth2 credential set is present.
func (c *Config) usesOAuth() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

func (c *Config) authMethods() int {
	n := 0
	if c.usesOAuth() {
		n++
	}
	if c.ServiceAccountPath != "" {
		n++
	}
	return n
}
