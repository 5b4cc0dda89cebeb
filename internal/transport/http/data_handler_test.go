package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "histviz/internal/errors"
	"histviz/internal/middleware"
	"histviz/internal/services"
	"histviz/internal/summary"
	api "histviz/pkg/contracts/api/v1"
)

// MockSummaryService is a mock implementation of SummaryServiceInterface
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) ListDates(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSummaryService) ListDatasets(ctx context.Context, date string) ([]string, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSummaryService) ListColumns(ctx context.Context, date, name string) ([]string, error) {
	args := m.Called(ctx, date, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSummaryService) Histogram(ctx context.Context, req api.HistogramRequest) (*summary.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*summary.Result), args.Error(1)
}

func (m *MockSummaryService) Scatter(ctx context.Context, req api.ScatterRequest) (*summary.Scatter, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*summary.Scatter), args.Error(1)
}

func setupDataHandler(t *testing.T) (*MockSummaryService, http.Handler) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	service := new(MockSummaryService)
	errorHandler := apierrors.NewErrorHandler(logger, false)
	handler := NewDataHandler(service, middleware.NewRequestValidator(logger), logger, errorHandler)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return service, r
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sampleResult() *summary.Result {
	return &summary.Result{
		Counts:        []int{1, 2},
		BinCenters:    []float64{0.5, 1.5},
		BinEdges:      []float64{0, 1, 2},
		MaxCountRange: [2]float64{1, 2},
		MaxCountValue: 2,
	}
}

func TestDataHandler_Histogram(t *testing.T) {
	service, router := setupDataHandler(t)

	service.On("Histogram", mock.Anything, mock.MatchedBy(func(req api.HistogramRequest) bool {
		return req.Dataset == "sensors.xlsx" && req.Element == "temp" &&
			req.NumBins == api.Int(2) && !req.BinWidth.Valid
	})).Return(sampleResult(), nil)

	w := postJSON(router, "/histogram", `{"dataset":"sensors.xlsx","element":"temp","numBins":2}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var got summary.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, *sampleResult(), got)
	service.AssertExpectations(t)
}

func TestDataHandler_HistogramEmpty(t *testing.T) {
	service, router := setupDataHandler(t)
	service.On("Histogram", mock.Anything, mock.Anything).Return(nil, services.ErrEmptyResult)

	w := postJSON(router, "/histogram", `{"dataset":"sensors.xlsx","element":"temp","timeRange":[100,200]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error":"Filtered dataframe is empty"}`, w.Body.String())
}

func TestDataHandler_HistogramErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{
			name:       "malformed json",
			body:       `{"dataset":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "missing dataset",
			body:       `{"element":"temp"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
			wantField:  "dataset",
		},
		{
			name:       "non numeric bins",
			body:       `{"dataset":"a.csv","element":"temp","numBins":"many"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "numBins",
		},
		{
			name:       "unknown dataset",
			body:       `{"dataset":"nope.csv","element":"temp"}`,
			serviceErr: apierrors.DatasetNotFound("nope.csv"),
			wantStatus: http.StatusNotFound,
			wantCode:   "DATASET_NOT_FOUND",
			wantField:  "dataset",
		},
		{
			name:       "unknown column",
			body:       `{"dataset":"a.csv","element":"nope"}`,
			serviceErr: apierrors.ColumnNotFound("nope"),
			wantStatus: http.StatusNotFound,
			wantCode:   "COLUMN_NOT_FOUND",
			wantField:  "element",
		},
		{
			name:       "bad parameter",
			body:       `{"dataset":"a.csv","element":"temp","numBins":0}`,
			serviceErr: apierrors.InvalidParameter("numBins", "must be a positive integer, got 0"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_PARAMETER",
			wantField:  "numBins",
		},
		{
			name:       "unreadable file",
			body:       `{"dataset":"broken.xlsx","element":"temp"}`,
			serviceErr: apierrors.NewStorageError("failed to read dataset", assert.AnError),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, router := setupDataHandler(t)
			if tt.serviceErr != nil {
				service.On("Histogram", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			}

			w := postJSON(router, "/histogram", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["error_code"])
			}
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, body["field"])
			}
			if tt.serviceErr == nil {
				service.AssertNotCalled(t, "Histogram", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestDataHandler_HistogramRequiresJSON(t *testing.T) {
	service, router := setupDataHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/histogram", strings.NewReader("dataset=a.csv"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	service.AssertNotCalled(t, "Histogram", mock.Anything, mock.Anything)
}

func TestDataHandler_ExportHistogram(t *testing.T) {
	service, router := setupDataHandler(t)
	service.On("Histogram", mock.Anything, mock.Anything).Return(sampleResult(), nil)

	w := postJSON(router, "/histogram/export", `{"dataset":"sensors.xlsx","element":"temp"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=sensors_temp_histogram.csv", w.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Equal(t, []string{
		"bin_start,bin_end,center,count",
		"0,1,0.5,1",
		"1,2,1.5,2",
	}, lines)
}

func TestDataHandler_ExportHistogramEmpty(t *testing.T) {
	service, router := setupDataHandler(t)
	service.On("Histogram", mock.Anything, mock.Anything).Return(nil, services.ErrEmptyResult)

	w := postJSON(router, "/histogram/export", `{"dataset":"sensors.xlsx","element":"temp"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.JSONEq(t, `{"error":"Filtered dataframe is empty"}`, w.Body.String())
}

func TestDataHandler_Scatterplot(t *testing.T) {
	service, router := setupDataHandler(t)

	yMax := 50.0
	service.On("Scatter", mock.Anything, mock.MatchedBy(func(req api.ScatterRequest) bool {
		return req.Element == "temp" && req.YScaleMax.Valid && req.YScaleMax.Value == 50
	})).Return(&summary.Scatter{
		Times:     []float64{1, 2},
		Values:    []float64{10, 11},
		YScaleMax: &yMax,
	}, nil)

	w := postJSON(router, "/scatterplot", `{"dataset":"sensors.xlsx","element":"temp","yScaleMax":50}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"times":[1,2],"values":[10,11],"yScaleMax":50}`, w.Body.String())
	service.AssertExpectations(t)
}

func TestDataHandler_ScatterplotEmpty(t *testing.T) {
	service, router := setupDataHandler(t)
	service.On("Scatter", mock.Anything, mock.Anything).Return(nil, services.ErrEmptyResult)

	w := postJSON(router, "/scatterplot", `{"dataset":"sensors.xlsx","element":"temp"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error":"Dataframe is empty"}`, w.Body.String())
}

func TestDataHandler_Listing(t *testing.T) {
	service, router := setupDataHandler(t)
	service.On("ListDates", mock.Anything).Return([]string{"2024-03-01"}, nil)
	service.On("ListDatasets", mock.Anything, "2024-03-01").Return([]string{"flow.csv", "sensors.xlsx"}, nil)
	service.On("ListColumns", mock.Anything, "2024-03-01", "sensors.xlsx").Return([]string{"temp", "pressure"}, nil)

	tests := []struct {
		path string
		want string
	}{
		{path: "/dates", want: `["2024-03-01"]`},
		{path: "/datasets?date=2024-03-01", want: `["flow.csv","sensors.xlsx"]`},
		{path: "/columns/sensors.xlsx?date=2024-03-01", want: `["temp","pressure"]`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
	service.AssertExpectations(t)
}

func TestDataHandler_ListingErrors(t *testing.T) {
	service, router := setupDataHandler(t)
	service.On("ListDatasets", mock.Anything, "2020-01-01").Return(nil, apierrors.DateNotFound("2020-01-01"))
	service.On("ListColumns", mock.Anything, "", "nope.csv").Return(nil, apierrors.DatasetNotFound("nope.csv"))

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{name: "unknown date", path: "/datasets?date=2020-01-01", wantStatus: http.StatusNotFound, wantCode: "DATE_NOT_FOUND"},
		{name: "traversal in date", path: "/datasets?date=..", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "unknown dataset", path: "/columns/nope.csv", wantStatus: http.StatusNotFound, wantCode: "DATASET_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeBody(t, w)["error_code"])
		})
	}
	service.AssertNotCalled(t, "ListDatasets", mock.Anything, "..")
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "sensors_temp_histogram.csv", exportFilename("sensors.xlsx", "temp"))
	assert.Equal(t, "flow_inlet_pressure_histogram.csv", exportFilename("flow.csv", "inlet pressure"))
	assert.Equal(t, "a_x_y__histogram.csv", exportFilename("a.csv", `x"y;`))
}
