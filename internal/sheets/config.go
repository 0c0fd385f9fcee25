// Package sheets reads the vehicle catalog and rate table from Google Sheets,
// either through the Sheets API or through public CSV export links.
package sheets

import (
	"fmt"
	"time"

	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/service"
)

// Mode selects how sheets are read.
type Mode string

const (
	// ModeExport downloads public share links as CSV.
	ModeExport Mode = "export"
	// ModeAPI reads ranges through the authenticated Sheets API.
	ModeAPI Mode = "api"
)

// Config holds the configuration for reading source sheets.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	CatalogURL         string
	RatesURL           string
	CatalogRange       string
	RatesRange         string
	RetryAttempts      int
	RetryDelay         time.Duration
	Timeout            time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CatalogRange:  "Cars!A:D",
		RatesRange:    "Rates!A:E",
		RetryAttempts: 3,
		RetryDelay:    time.Second,
		Timeout:       30 * time.Second,
	}
}

// Mode reports which reader the configuration calls for. Public links take
// precedence over the API.
func (c *Config) Mode() Mode {
	if c.CatalogURL != "" || c.RatesURL != "" {
		return ModeExport
	}
	return ModeAPI
}

// Refs returns the catalog and rate table references for the configured mode.
func (c *Config) Refs() (catalog, rates service.SheetRef) {
	if c.Mode() == ModeExport {
		return service.SheetRef{URL: c.CatalogURL}, service.SheetRef{URL: c.RatesURL}
	}
	return service.SheetRef{SpreadsheetID: c.SpreadsheetID, Range: c.CatalogRange},
		service.SheetRef{SpreadsheetID: c.SpreadsheetID, Range: c.RatesRange}
}

// RetryOptions converts the retry settings for common.WithRetry.
func (c *Config) RetryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  c.RetryAttempts,
		InitialDelay: c.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}

	if c.Mode() == ModeExport {
		if c.CatalogURL == "" || c.RatesURL == "" {
			return fmt.Errorf("%w: both catalog_url and rates_url are required for public sheets", common.ErrMissingConfig)
		}
		return nil
	}

	if c.SpreadsheetID == "" {
		return fmt.Errorf("%w: no sheet source configured, set catalog_url and rates_url, or spreadsheet_id", common.ErrMissingConfig)
	}
	if c.CatalogRange == "" || c.RatesRange == "" {
		return fmt.Errorf("%w: catalog_range and rates_range are required with spreadsheet_id", common.ErrMissingConfig)
	}

	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("%w: no authentication method configured", common.ErrMissingConfig)
	}
	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("%w: multiple authentication methods, use either OAuth2 or service account", common.ErrInvalidConfig)
	}

	return nil
}
