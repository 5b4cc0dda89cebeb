package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"histviz/internal/config"
	"histviz/internal/dataset"
	apierrors "histviz/internal/errors"
	"histviz/internal/infrastructure"
	"histviz/internal/summary"
	api "histviz/pkg/contracts/api/v1"
)

// SummaryService computes histogram and scatter summaries over the datasets
// exposed by a row source.
type SummaryService struct {
	source  dataset.Source
	limits  config.SummaryConfig
	tracer  trace.Tracer
	metrics *infrastructure.SummaryMetrics
	logger  *slog.Logger
}

// NewSummaryService creates a summary service. tracer and metrics may be nil.
func NewSummaryService(source dataset.Source, limits config.SummaryConfig, tracer trace.Tracer, metrics *infrastructure.SummaryMetrics, logger *slog.Logger) *SummaryService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer("histviz")
	}
	if limits.DefaultNumBins <= 0 {
		limits.DefaultNumBins = summary.DefaultNumBins
	}

	return &SummaryService{
		source:  source,
		limits:  limits,
		tracer:  tracer,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "summary_service")),
	}
}

// DatasetLoadObserver records dataset read latency, labelled by file format
func DatasetLoadObserver(metrics *infrastructure.SummaryMetrics) dataset.LoadObserver {
	return func(ctx context.Context, id dataset.ID, elapsed time.Duration, err error) {
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(id.Name)), ".")
		metrics.RecordDatasetLoad(ctx, format, elapsed, err)
	}
}

// ListDates returns the date directories under the data directory
func (s *SummaryService) ListDates(ctx context.Context) ([]string, error) {
	dates, err := s.source.ListDates(ctx)
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			s.logger.WarnContext(ctx, "data directory missing, no dates to list")
			return []string{}, nil
		}
		return nil, apierrors.NewStorageError("failed to list dates", err)
	}
	return dates, nil
}

// ListDatasets returns the dataset names for a date, or the top-level ones when date is empty
func (s *SummaryService) ListDatasets(ctx context.Context, date string) ([]string, error) {
	names, err := s.source.ListDatasets(ctx, date)
	if err != nil {
		switch {
		case errors.Is(err, dataset.ErrInvalidIdentifier):
			return nil, apierrors.ErrValidation("date", "date must be a plain name without path separators")
		case errors.Is(err, dataset.ErrNotFound) && date != "":
			return nil, apierrors.DateNotFound(date)
		case errors.Is(err, dataset.ErrNotFound):
			s.logger.WarnContext(ctx, "data directory missing, no datasets to list")
			return []string{}, nil
		default:
			return nil, apierrors.NewStorageError("failed to list datasets", err)
		}
	}
	return names, nil
}

// ListColumns returns the value columns of a dataset, time axis excluded
func (s *SummaryService) ListColumns(ctx context.Context, date, name string) ([]string, error) {
	id := dataset.ID{Date: date, Name: name}
	cols, err := s.source.ListColumns(ctx, id)
	if err != nil {
		return nil, s.mapSourceError(id, err)
	}
	return cols, nil
}

// Histogram validates the request options, loads the dataset and runs the
// histogram pipeline. ErrEmptyResult is returned unwrapped when nothing
// survives the filter.
func (s *SummaryService) Histogram(ctx context.Context, req api.HistogramRequest) (*summary.Result, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "summary.histogram", trace.WithAttributes(
		attribute.String("dataset", req.Dataset),
		attribute.String("element", req.Element),
	))
	defer span.End()

	query, err := s.histogramQuery(req)
	if err != nil {
		s.finish(ctx, "histogram", start, err)
		return nil, err
	}

	ds, err := s.load(ctx, dataset.ID{Date: req.Date, Name: req.Dataset})
	if err != nil {
		s.finish(ctx, "histogram", start, err)
		return nil, err
	}

	result, stats, err := summary.Compute(ds, query)
	if err == nil {
		s.metrics.RecordValues(ctx, stats.InRange, stats.Overflow)
	}
	err = s.mapSummaryError(err)
	span.SetAttributes(
		attribute.Int("rows.filtered", stats.RowsFiltered),
		attribute.Int("values", stats.Values),
		attribute.Int("values.overflow", stats.Overflow),
	)
	s.finish(ctx, "histogram", start, err)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "histogram computed",
		slog.String("dataset", req.Dataset),
		slog.String("element", req.Element),
		slog.Int("bins", len(result.Counts)),
		slog.Int("values", stats.Values),
		slog.Int("overflow", stats.Overflow))
	return &result, nil
}

// Scatter loads the dataset and returns the (time, value) series of a column
func (s *SummaryService) Scatter(ctx context.Context, req api.ScatterRequest) (*summary.Scatter, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "summary.scatter", trace.WithAttributes(
		attribute.String("dataset", req.Dataset),
		attribute.String("element", req.Element),
	))
	defer span.End()

	lo, hi := req.Bounds()
	query := summary.ScatterQuery{
		Column:    req.Element,
		TimeRange: summary.TimeRange{Min: lo, Max: hi},
		YScaleMax: req.YScaleMax.Ptr(),
	}
	if err := query.TimeRange.Validate(); err != nil {
		err = s.mapSummaryError(err)
		s.finish(ctx, "scatter", start, err)
		return nil, err
	}

	ds, err := s.load(ctx, dataset.ID{Date: req.Date, Name: req.Dataset})
	if err != nil {
		s.finish(ctx, "scatter", start, err)
		return nil, err
	}

	series, err := summary.ScatterSeries(ds, query)
	err = s.mapSummaryError(err)
	s.finish(ctx, "scatter", start, err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("points", len(series.Times)))
	return &series, nil
}

// histogramQuery turns request options into a validated summary query.
// Without numBins and binWidth the configured default bin count applies.
func (s *SummaryService) histogramQuery(req api.HistogramRequest) (summary.HistogramQuery, error) {
	opts := summary.Options{
		Threshold: req.OverflowThreshold.Ptr(),
		MaxBins:   s.limits.MaxNumBins,
	}

	switch {
	case req.NumBins.Valid:
		if req.NumBins.Value <= 0 {
			return summary.HistogramQuery{}, apierrors.InvalidParameter("numBins",
				fmt.Sprintf("must be a positive integer, got %d", req.NumBins.Value))
		}
		opts.NumBins = req.NumBins.Value
	case req.BinWidth.Valid:
		if req.BinWidth.Value <= 0 {
			return summary.HistogramQuery{}, apierrors.InvalidParameter("binWidth", "must be a positive number")
		}
		opts.BinWidth = req.BinWidth.Value
	default:
		opts.NumBins = s.limits.DefaultNumBins
	}

	lo, hi := req.Bounds()
	query := summary.HistogramQuery{
		Column:    req.Element,
		TimeRange: summary.TimeRange{Min: lo, Max: hi},
		Options:   opts,
	}

	if err := query.TimeRange.Validate(); err != nil {
		return summary.HistogramQuery{}, s.mapSummaryError(err)
	}
	if err := opts.Validate(); err != nil {
		return summary.HistogramQuery{}, s.mapSummaryError(err)
	}
	return query, nil
}

func (s *SummaryService) load(ctx context.Context, id dataset.ID) (*dataset.Dataset, error) {
	ctx, span := s.tracer.Start(ctx, "dataset.load", trace.WithAttributes(
		attribute.String("dataset", id.String()),
	))
	defer span.End()

	ds, err := s.source.LoadRows(ctx, id)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, s.mapSourceError(id, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("rows", ds.Len()))
	return ds, nil
}

func (s *SummaryService) mapSourceError(id dataset.ID, err error) error {
	switch {
	case errors.Is(err, dataset.ErrInvalidIdentifier):
		return apierrors.ErrValidation("dataset", "dataset must be a plain name without path separators")
	case errors.Is(err, dataset.ErrNotFound), errors.Is(err, dataset.ErrUnsupportedFormat):
		return apierrors.DatasetNotFound(id.String())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return apierrors.NewStorageError("failed to read dataset", err).WithContext("dataset", id.String())
	}
}

func (s *SummaryService) mapSummaryError(err error) error {
	if err == nil {
		return nil
	}

	var colErr *summary.ColumnError
	if errors.As(err, &colErr) {
		return apierrors.ColumnNotFound(colErr.Column)
	}

	var paramErr *summary.ParameterError
	if errors.As(err, &paramErr) {
		return apierrors.InvalidParameter(paramErr.Field, paramErr.Reason)
	}

	return err
}

// finish records the outcome of one summary request
func (s *SummaryService) finish(ctx context.Context, kind string, start time.Time, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrEmptyResult):
		outcome = "empty"
	default:
		outcome = "error"
		infrastructure.RecordError(ctx, err)
	}
	s.metrics.RecordSummary(ctx, kind, outcome, time.Since(start))
}
