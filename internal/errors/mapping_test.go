package errors

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonKorobenko/test-task/internal/dataprocessing"
)

func TestFromError(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		err        error
		wantNil    bool
		wantStatus int
		wantCode   string
	}{
		{
			name:    "nil error",
			err:     nil,
			wantNil: true,
		},
		{
			name:    "unknown error",
			err:     errors.New("disk on fire"),
			wantNil: true,
		},
		{
			name:       "api error passes through",
			err:        fmt.Errorf("wrapped: %w", ErrRateLimitExceeded),
			wantStatus: http.StatusTooManyRequests,
			wantCode:   CodeRateLimitExceeded,
		},
		{
			name:       "parse error",
			err:        &dataprocessing.ParseError{Param: "startTime", Value: "yesterday", Err: errors.New("bad layout")},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidParameter,
		},
		{
			name:       "invalid query without field errors",
			err:        fmt.Errorf("%w: unsupported interval", dataprocessing.ErrInvalidQuery),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeValidationFailed,
		},
		{
			name:       "currency lookup",
			err:        &dataprocessing.LookupError{Currency: "EUR", From: day, To: day.AddDate(0, 0, 1)},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   CodeCurrencyLookupFailed,
		},
		{
			name:       "schema error",
			err:        &dataprocessing.SchemaError{Source: "trades.csv", Column: "side"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeDatasetSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromError(tt.err)
			if tt.wantNil {
				assert.Nil(t, apiErr)
				return
			}
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}
}

func TestFromError_LookupDetails(t *testing.T) {
	from := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	apiErr := FromError(&dataprocessing.LookupError{Currency: "GBP", From: from, To: from.Add(time.Hour)})
	require.NotNil(t, apiErr)

	details, ok := apiErr.Details.(LookupDetails)
	require.True(t, ok)
	assert.Equal(t, LookupDetails{Currency: "GBP", From: "2024-03-04", To: "2024-03-04"}, details)
	assert.Contains(t, apiErr.Message, "GBP")
}

func TestFromError_QueryValidation(t *testing.T) {
	parser := dataprocessing.NewQueryParser()
	_, err := parser.Parse(url.Values{
		"startTime": {"01/02/24 10:00"},
		"endTime":   {"01/03/24 10:00"},
		"symbol":    {strings.Repeat("x", 65)},
		"interval":  {"week"},
	})
	require.Error(t, err)

	apiErr := FromError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, CodeValidationFailed, apiErr.ErrorCode)

	details, ok := apiErr.Details.(ValidationErrors)
	require.True(t, ok)

	messages := make(map[string]string)
	for _, e := range details.Errors {
		messages[e.Field] = e.Message
	}
	assert.Equal(t, "symbol must be at most 64 characters", messages["symbol"])
	assert.Equal(t, "interval must be one of: day, hour", messages["interval"])
}
