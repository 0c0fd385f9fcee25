package sheets

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Veraticus/carquote/internal/common"
	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestClassifyAPIError(t *testing.T) {
	tests := []struct {
		err       error
		name      string
		retryable bool
		rateLimit bool
	}{
		{name: "rate limited", err: &googleapi.Error{Code: http.StatusTooManyRequests}, retryable: true, rateLimit: true},
		{name: "server error", err: &googleapi.Error{Code: http.StatusBadGateway}, retryable: true},
		{name: "not found", err: &googleapi.Error{Code: http.StatusNotFound}},
		{name: "forbidden", err: &googleapi.Error{Code: http.StatusForbidden}},
		{name: "transport", err: errors.New("connection reset"), retryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyAPIError(tt.err)
			assert.ErrorIs(t, err, common.ErrSourceUnavailable)
			assert.Equal(t, tt.retryable, common.IsRetryable(err))
			assert.Equal(t, tt.rateLimit, errors.Is(err, common.ErrRateLimit))
		})
	}
}

func TestSplitHeader(t *testing.T) {
	header, rows := splitHeader([][]string{{"", ""}, {"a", "b"}, {"1", "2"}, {""}, {"3"}})
	assert.Equal(t, []string{"a", "b"}, header)
	assert.Equal(t, [][]string{{"1", "2"}, {"3"}}, rows)

	header, rows = splitHeader(nil)
	assert.Nil(t, header)
	assert.Empty(t, rows)
}
