package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// APIReader reads sheet ranges through the Google Sheets API.
type APIReader struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewAPIReader creates a reader authenticated with the configured service
// account or OAuth2 refresh token.
func NewAPIReader(ctx context.Context, config Config, logger *slog.Logger) (*APIReader, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if config.Mode() != ModeAPI {
		return nil, fmt.Errorf("%w: spreadsheet_id is required for API access", common.ErrInvalidConfig)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &APIReader{
		service: srv,
		logger:  logger,
		config:  config,
	}, nil
}

// ReadRows implements service.RowSource.
func (r *APIReader) ReadRows(ctx context.Context, ref service.SheetRef) ([]string, [][]string, error) {
	if ref.SpreadsheetID == "" || ref.Range == "" {
		return nil, nil, fmt.Errorf("%w: API reads need a spreadsheet ID and range", common.ErrInvalidConfig)
	}

	var values [][]interface{}
	err := common.WithRetry(ctx, func() error {
		resp, err := r.service.Spreadsheets.Values.Get(ref.SpreadsheetID, ref.Range).
			ValueRenderOption("FORMATTED_VALUE").
			Context(ctx).
			Do()
		if err != nil {
			return classifyAPIError(err)
		}
		values = resp.Values
		return nil
	}, r.config.RetryOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", ref, err)
	}

	r.logger.Debug("read sheet range", "ref", ref.String(), "rows", len(values))

	records := make([][]string, 0, len(values))
	for _, row := range values {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		records = append(records, record)
	}

	header, rows := splitHeader(records)
	if header == nil {
		return nil, nil, fmt.Errorf("%w: %s is empty", common.ErrSourceUnavailable, ref)
	}
	return header, rows, nil
}

func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return common.Transient(fmt.Errorf("%w: %w", common.ErrSourceUnavailable, err))
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return common.Transient(fmt.Errorf("%w: %w", common.ErrRateLimit, err))
	case apiErr.Code >= http.StatusInternalServerError:
		return common.Transient(fmt.Errorf("%w: %w", common.ErrSourceUnavailable, err))
	default:
		return common.Permanent(fmt.Errorf("%w: %w", common.ErrSourceUnavailable, err))
	}
}

func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := oauthConfig(config.ClientID, config.ClientSecret, "")
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		tokenSource = client.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	if config.Timeout > 0 {
		httpClient.Timeout = config.Timeout
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// splitHeader separates the first non-blank row from the rows after it.
// Blank rows are dropped.
func splitHeader(records [][]string) ([]string, [][]string) {
	var header []string
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		if blank(record) {
			continue
		}
		if header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
	}
	return header, rows
}

func blank(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}
