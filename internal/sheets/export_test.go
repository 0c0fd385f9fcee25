package sheets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testExportReader(t *testing.T, srv *httptest.Server) *ExportReader {
	t.Helper()
	cfg := DefaultConfig()
	cfg.RetryAttempts = 3
	cfg.RetryDelay = time.Millisecond
	return NewExportReader(cfg, srv.Client(), testLogger())
}

func TestExportReader_ReadRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = fmt.Fprint(w, "ดาวน์,48,60\n,,\n10%,2.49%,2.69%\n30%,1%\n")
	}))
	defer srv.Close()

	header, rows, err := testExportReader(t, srv).ReadRows(context.Background(), service.SheetRef{URL: srv.URL})
	require.NoError(t, err)

	assert.Equal(t, []string{"ดาวน์", "48", "60"}, header)
	assert.Equal(t, [][]string{{"10%", "2.49%", "2.69%"}, {"30%", "1%"}}, rows)
}

func TestExportReader_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, "model,sub model,price,image_url\nSeal,AWD,1599000,\n")
	}))
	defer srv.Close()

	header, rows, err := testExportReader(t, srv).ReadRows(context.Background(), service.SheetRef{URL: srv.URL})
	require.NoError(t, err)
	assert.Len(t, header, 4)
	assert.Len(t, rows, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestExportReader_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	_, _, err := testExportReader(t, srv).ReadRows(context.Background(), service.SheetRef{URL: srv.URL})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSourceUnavailable)
	assert.False(t, common.IsRetryable(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestExportReader_PrivateSheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, "<html>Sign in</html>")
	}))
	defer srv.Close()

	_, _, err := testExportReader(t, srv).ReadRows(context.Background(), service.SheetRef{URL: srv.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not publicly shared")
}

func TestExportReader_EmptySheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, "\n")
	}))
	defer srv.Close()

	_, _, err := testExportReader(t, srv).ReadRows(context.Background(), service.SheetRef{URL: srv.URL})
	assert.ErrorIs(t, err, common.ErrSourceUnavailable)
}

func TestExportReader_RequiresURL(t *testing.T) {
	r := NewExportReader(DefaultConfig(), nil, testLogger())
	_, _, err := r.ReadRows(context.Background(), service.SheetRef{SpreadsheetID: "x", Range: "A:B"})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}
