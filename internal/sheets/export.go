package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/service"
)

// ExportReader downloads publicly shared sheets as CSV.
type ExportReader struct {
	client *http.Client
	logger *slog.Logger
	retry  service.RetryOptions
}

// NewExportReader creates a reader for public share links. A nil client
// uses one with the configured timeout.
func NewExportReader(config Config, client *http.Client, logger *slog.Logger) *ExportReader {
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}
	return &ExportReader{
		client: client,
		logger: logger,
		retry:  config.RetryOptions(),
	}
}

// ReadRows implements service.RowSource. Share links are rewritten to their
// CSV export form; any other URL is fetched as is.
func (r *ExportReader) ReadRows(ctx context.Context, ref service.SheetRef) ([]string, [][]string, error) {
	if ref.URL == "" {
		return nil, nil, fmt.Errorf("%w: public reads need a URL", common.ErrInvalidConfig)
	}

	url, converted := CSVExportURL(ref.URL)
	if converted {
		r.logger.Debug("using CSV export link", "share_link", ref.URL, "export_url", url)
	}

	var records [][]string
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		records, fetchErr = r.fetch(ctx, url)
		return fetchErr
	}, r.retry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", ref, err)
	}

	header, rows := splitHeader(records)
	if header == nil {
		return nil, nil, fmt.Errorf("%w: %s is empty", common.ErrSourceUnavailable, ref)
	}

	r.logger.Debug("read public sheet", "url", url, "rows", len(rows))
	return header, rows, nil
}

func (r *ExportReader) fetch(ctx context.Context, url string) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, common.Permanent(fmt.Errorf("failed to build request: %w", err))
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, common.Transient(fmt.Errorf("%w: %w", common.ErrSourceUnavailable, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	// Private sheets redirect to a sign-in page instead of failing.
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		return nil, common.Permanent(fmt.Errorf("%w: sheet is not publicly shared", common.ErrSourceUnavailable))
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, common.Permanent(fmt.Errorf("failed to parse CSV: %w", err))
	}
	return records, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	err := fmt.Errorf("%w: HTTP %d: %s", common.ErrSourceUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return common.Transient(fmt.Errorf("%w: %w", common.ErrRateLimit, err))
	case resp.StatusCode >= http.StatusInternalServerError:
		return common.Transient(err)
	default:
		return common.Permanent(err)
	}
}
