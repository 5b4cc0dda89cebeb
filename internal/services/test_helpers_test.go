package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"histviz/internal/dataset"
)

// MockSource is a testify mock of dataset.Source
type MockSource struct {
	mock.Mock
}

func (m *MockSource) LoadRows(ctx context.Context, id dataset.ID) (*dataset.Dataset, error) {
	args := m.Called(ctx, id)
	ds, _ := args.Get(0).(*dataset.Dataset)
	return ds, args.Error(1)
}

func (m *MockSource) ListColumns(ctx context.Context, id dataset.ID) ([]string, error) {
	args := m.Called(ctx, id)
	cols, _ := args.Get(0).([]string)
	return cols, args.Error(1)
}

func (m *MockSource) ListDatasets(ctx context.Context, date string) ([]string, error) {
	args := m.Called(ctx, date)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockSource) ListDates(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	dates, _ := args.Get(0).([]string)
	return dates, args.Error(1)
}

// overflowDataset holds the values 0,1,2,3,10,11,12 at times 1..7
func overflowDataset() *dataset.Dataset {
	values := []float64{0, 1, 2, 3, 10, 11, 12}
	rows := make([]dataset.Row, len(values))
	for i, v := range values {
		rows[i] = dataset.Row{dataset.Num(float64(i + 1)), dataset.Num(v)}
	}
	return &dataset.Dataset{Name: "sensors.xlsx", Columns: []string{"time", "temp"}, Rows: rows}
}
