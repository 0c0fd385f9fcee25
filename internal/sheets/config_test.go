package sheets

import (
	"testing"
	"time"

	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name: "public links",
			config: Config{
				CatalogURL:    "https://docs.google.com/spreadsheets/d/cars/edit",
				RatesURL:      "https://docs.google.com/spreadsheets/d/rates/edit",
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
		},
		{
			name: "only one public link",
			config: Config{
				CatalogURL: "https://docs.google.com/spreadsheets/d/cars/edit",
			},
			wantErr: true,
			errMsg:  "both catalog_url and rates_url are required",
		},
		{
			name:    "nothing configured",
			config:  Config{},
			wantErr: true,
			errMsg:  "no sheet source configured",
		},
		{
			name: "partial oauth credentials",
			config: Config{
				SpreadsheetID: "sheet-id",
				CatalogRange:  "Cars!A:D",
				RatesRange:    "Rates!A:E",
				ClientID:      "test-client",
				ClientSecret:  "", // Missing secret
				RefreshToken:  "test-token",
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name: "both auth methods",
			config: Config{
				SpreadsheetID:      "sheet-id",
				CatalogRange:       "Cars!A:D",
				RatesRange:         "Rates!A:E",
				ClientID:           "test-client",
				ClientSecret:       "secret",
				RefreshToken:       "test-token",
				ServiceAccountPath: "/path/to/key.json",
			},
			wantErr: true,
			errMsg:  "multiple authentication methods",
		},
		{
			name: "missing range",
			config: Config{
				SpreadsheetID:      "sheet-id",
				CatalogRange:       "Cars!A:D",
				ServiceAccountPath: "/path/to/key.json",
			},
			wantErr: true,
			errMsg:  "catalog_range and rates_range are required",
		},
		{
			name: "zero retry delay is valid",
			config: Config{
				SpreadsheetID:      "sheet-id",
				CatalogRange:       "Cars!A:D",
				RatesRange:         "Rates!A:E",
				ServiceAccountPath: "/path/to/key.json",
				RetryAttempts:      0, // No retries
				RetryDelay:         0, // No delay
			},
		},
		{
			name: "negative retry delay",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				RetryAttempts:      3,
				RetryDelay:         -1 * time.Second,
			},
			wantErr: true,
			errMsg:  "retry delay cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Refs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpreadsheetID = "sheet-id"
	assert.Equal(t, ModeAPI, cfg.Mode())

	cat, rates := cfg.Refs()
	assert.Equal(t, service.SheetRef{SpreadsheetID: "sheet-id", Range: "Cars!A:D"}, cat)
	assert.Equal(t, service.SheetRef{SpreadsheetID: "sheet-id", Range: "Rates!A:E"}, rates)

	cfg.CatalogURL = "https://example.com/cars.csv"
	cfg.RatesURL = "https://example.com/rates.csv"
	assert.Equal(t, ModeExport, cfg.Mode())

	cat, rates = cfg.Refs()
	assert.Equal(t, "https://example.com/cars.csv", cat.URL)
	assert.Equal(t, "https://example.com/rates.csv", rates.URL)
}

func TestConfig_ValidateSentinels(t *testing.T) {
	missing := Config{}
	assert.ErrorIs(t, missing.Validate(), common.ErrMissingConfig)

	negative := Config{CatalogURL: "a", RatesURL: "b", RetryAttempts: -1}
	assert.ErrorIs(t, negative.Validate(), common.ErrInvalidConfig)
}
