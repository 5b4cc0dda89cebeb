package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "histviz/internal/errors"
	"histviz/internal/shared/testutil"
	api "histviz/pkg/contracts/api/v1"
)

func TestDecodeJSON_Valid(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	v := NewRequestValidator(logger)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		`{"dataset":"sensors.xlsx","element":"temp","numBins":"5","timeRange":[null,10],"extra":true}`))

	var hr api.HistogramRequest
	require.NoError(t, v.DecodeJSON(req, &hr))

	assert.Equal(t, "sensors.xlsx", hr.Dataset)
	assert.Equal(t, 5, hr.NumBins.Value)
	min, max := hr.Bounds()
	assert.Nil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 10.0, *max)
}

func TestDecodeJSON_Errors(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	v := NewRequestValidator(logger)

	tests := []struct {
		name      string
		body      string
		wantCode  string
		wantField string
	}{
		{name: "empty body", body: ``, wantCode: "INVALID_REQUEST"},
		{name: "malformed", body: `{"dataset":`, wantCode: "INVALID_REQUEST"},
		{name: "missing element", body: `{"dataset":"a.csv"}`, wantCode: "VALIDATION_FAILED", wantField: "element"},
		{name: "missing dataset", body: `{"element":"temp"}`, wantCode: "VALIDATION_FAILED", wantField: "dataset"},
		{name: "traversal", body: `{"dataset":"../secret.csv","element":"temp"}`, wantCode: "VALIDATION_FAILED", wantField: "dataset"},
		{name: "time range arity", body: `{"dataset":"a.csv","element":"t","timeRange":[1]}`, wantCode: "VALIDATION_FAILED", wantField: "timeRange"},
		{name: "non numeric bins", body: `{"dataset":"a.csv","element":"t","numBins":"many"}`, wantCode: "INVALID_PARAMETER", wantField: "numBins"},
		{name: "fractional bins", body: `{"dataset":"a.csv","element":"t","numBins":2.5}`, wantCode: "INVALID_PARAMETER", wantField: "numBins"},
		{name: "non numeric threshold", body: `{"dataset":"a.csv","element":"t","overflowThreshold":"high"}`, wantCode: "INVALID_PARAMETER", wantField: "overflowThreshold"},
		{name: "non numeric bound", body: `{"dataset":"a.csv","element":"t","timeRange":[0,"x"]}`, wantCode: "INVALID_PARAMETER", wantField: "timeRange"},
		{name: "wrong type", body: `{"dataset":5,"element":"t"}`, wantCode: "INVALID_PARAMETER", wantField: "dataset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var hr api.HistogramRequest
			err := v.DecodeJSON(req, &hr)
			require.Error(t, err)

			var apiErr *apierrors.APIError
			require.True(t, errors.As(err, &apiErr), "got %T", err)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, tt.wantField, apiErr.Field())
		})
	}
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	v := NewRequestValidator(logger)
	errorHandler := apierrors.NewErrorHandler(logger, false)

	h := MaxBodySize(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var hr api.HistogramRequest
		errorHandler.HandleError(w, r, v.DecodeJSON(r, &hr))
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"dataset":"a-very-long-name.csv","element":"t"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, apierrors.TypePayloadTooLarge, decodeProblem(t, rec)["type"])
}

func TestValidateStruct_DatasetQuery(t *testing.T) {
	v := NewRequestValidator(nil)

	assert.NoError(t, v.ValidateStruct(&api.DatasetQuery{}))
	assert.NoError(t, v.ValidateStruct(&api.DatasetQuery{Date: "2024-03-01"}))

	err := v.ValidateStruct(&api.DatasetQuery{Date: "a/b"})
	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "date", apiErr.Field())
}
