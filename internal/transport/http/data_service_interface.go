package http

import (
	"context"

	"histviz/internal/summary"
	api "histviz/pkg/contracts/api/v1"
)

// SummaryServiceInterface defines the dataset and summary operations the handlers need
type SummaryServiceInterface interface {
	ListDates(ctx context.Context) ([]string, error)
	ListDatasets(ctx context.Context, date string) ([]string, error)
	ListColumns(ctx context.Context, date, name string) ([]string, error)
	Histogram(ctx context.Context, req api.HistogramRequest) (*summary.Result, error)
	Scatter(ctx context.Context, req api.ScatterRequest) (*summary.Scatter, error)
}
