package http

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "histviz/internal/errors"
	"histviz/internal/exporter"
	"histviz/internal/middleware"
	"histviz/internal/services"
	api "histviz/pkg/contracts/api/v1"
)

// DataHandler handles dataset listing and summary requests with RFC 7807 errors
type DataHandler struct {
	service      SummaryServiceInterface
	validator    *middleware.RequestValidator
	csv          *exporter.CSVWriter
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler
func NewDataHandler(service SummaryServiceInterface, validator *middleware.RequestValidator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		validator:    validator,
		csv:          exporter.NewCSVWriter(logger),
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// RegisterRoutes mounts the dataset and summary routes on r
func (h *DataHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dates", h.ListDates)
	r.Get("/datasets", h.ListDatasets)
	r.Get("/columns/{dataset}", h.ListColumns)

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeValidator(h.errorHandler, "application/json"))
		r.Post("/histogram", h.Histogram)
		r.Post("/histogram/export", h.ExportHistogram)
		r.Post("/scatterplot", h.Scatterplot)
	})
}

// ListDates handles GET /dates
func (h *DataHandler) ListDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.ListDates(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, dates)
}

// ListDatasets handles GET /datasets?date=D
func (h *DataHandler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	query := api.DatasetQuery{Date: r.URL.Query().Get("date")}
	if err := h.validator.ValidateStruct(&query); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	names, err := h.service.ListDatasets(r.Context(), query.Date)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, names)
}

// ListColumns handles GET /columns/{dataset}?date=D
func (h *DataHandler) ListColumns(w http.ResponseWriter, r *http.Request) {
	query := api.DatasetQuery{Date: r.URL.Query().Get("date")}
	if err := h.validator.ValidateStruct(&query); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	name := chi.URLParam(r, "dataset")
	columns, err := h.service.ListColumns(r.Context(), query.Date, name)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, columns)
}

// Histogram handles POST /histogram
func (h *DataHandler) Histogram(w http.ResponseWriter, r *http.Request) {
	var req api.HistogramRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Histogram(r.Context(), req)
	if errors.Is(err, services.ErrEmptyResult) {
		h.renderEmpty(w, r, api.EmptyHistogramMessage, req.Dataset, req.Element)
		return
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// ExportHistogram handles POST /histogram/export. The summary is returned as
// a CSV attachment; an empty result gets the same JSON payload as /histogram.
func (h *DataHandler) ExportHistogram(w http.ResponseWriter, r *http.Request) {
	var req api.HistogramRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Histogram(r.Context(), req)
	if errors.Is(err, services.ErrEmptyResult) {
		h.renderEmpty(w, r, api.EmptyHistogramMessage, req.Dataset, req.Element)
		return
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": exportFilename(req.Dataset, req.Element),
	}))
	w.WriteHeader(http.StatusOK)

	if err := h.csv.Write(w, exporter.HistogramOptions(*result)); err != nil {
		// headers are gone; all that is left is to log
		h.logger.ErrorContext(r.Context(), "failed to stream histogram export",
			slog.String("dataset", req.Dataset),
			slog.String("error", err.Error()))
	}
}

// Scatterplot handles POST /scatterplot
func (h *DataHandler) Scatterplot(w http.ResponseWriter, r *http.Request) {
	var req api.ScatterRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	series, err := h.service.Scatter(r.Context(), req)
	if errors.Is(err, services.ErrEmptyResult) {
		h.renderEmpty(w, r, api.EmptyScatterMessage, req.Dataset, req.Element)
		return
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, series)
}

// renderEmpty answers an empty result with HTTP 200 and the error payload
func (h *DataHandler) renderEmpty(w http.ResponseWriter, r *http.Request, message, dataset, element string) {
	h.logger.InfoContext(r.Context(), "empty summary",
		slog.String("dataset", dataset),
		slog.String("element", element),
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.GetRequestID(r.Context())))

	render.JSON(w, r, api.ErrorPayload{Error: message})
}

// exportFilename builds "<dataset stem>_<element>_histogram.csv"
func exportFilename(dataset, element string) string {
	stem := strings.TrimSuffix(dataset, filepath.Ext(dataset))
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, stem+"_"+element)
	return clean + "_histogram.csv"
}
