package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Render(t *testing.T) {
	tests := []struct {
		name       string
		apiError   *APIError
		wantStatus int
	}{
		{name: "bad request", apiError: ErrInvalidRequest, wantStatus: http.StatusBadRequest},
		{name: "not found", apiError: DatasetNotFound("a.xlsx"), wantStatus: http.StatusNotFound},
		{name: "internal", apiError: ErrInternalServer, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			require.NoError(t, render.Render(w, r, tt.apiError))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAPIError_Field(t *testing.T) {
	tests := []struct {
		name     string
		apiError *APIError
		want     string
	}{
		{name: "dataset", apiError: DatasetNotFound("x.csv"), want: "dataset"},
		{name: "date", apiError: DateNotFound("2024-01-01"), want: "date"},
		{name: "column", apiError: ColumnNotFound("temp"), want: "element"},
		{name: "parameter", apiError: InvalidParameter("numBins", "must be positive"), want: "numBins"},
		{name: "validation", apiError: ErrValidation("timeRange", "must have 2 items"), want: "timeRange"},
		{name: "multiple", apiError: NewValidationErrors([]ValidationError{{Field: "element", Message: "required"}, {Field: "dataset", Message: "required"}}), want: "element"},
		{name: "no details", apiError: ErrInternalServer, want: ""},
		{name: "string details", apiError: NewWithDetails(http.StatusNotFound, "NOT_FOUND", "route not found", "route"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.apiError.Field())
		})
	}
}

func TestNewValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{
		{Field: "dataset", Message: "is required"},
		{Field: "element", Message: "is required"},
	})

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	details, ok := err.Details.(ValidationErrors)
	require.True(t, ok)
	assert.Len(t, details.Errors, 2)
}

func TestAppError(t *testing.T) {
	cause := fmt.Errorf("zip: not a valid zip file")
	err := NewStorageError("failed to load dataset", cause).WithContext("dataset", "a.xlsx")

	assert.Equal(t, "[STORAGE] failed to load dataset: zip: not a valid zip file", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "a.xlsx", err.Context["dataset"])

	var appErr *AppError
	wrapped := fmt.Errorf("histogram: %w", err)
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)

	assert.Equal(t, "[CONFIG] bad port", NewConfigError("bad port", nil).Error())
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusNotFound, TypeDatasetNotFound, "Not Found", "Dataset missing", "/histogram").
		WithExtension("field", "dataset").
		WithExtension("status", 999)

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, TypeDatasetNotFound, decoded["type"])
	assert.Equal(t, "dataset", decoded["field"])
	assert.Equal(t, float64(http.StatusNotFound), decoded["status"], "extensions cannot override standard members")
}
