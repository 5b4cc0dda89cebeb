package summary

import "histviz/internal/dataset"

// HistogramQuery describes one histogram request against a dataset.
type HistogramQuery struct {
	Column    string
	TimeRange TimeRange
	Options   Options
}

// Stats describes the sizes seen along the pipeline.
type Stats struct {
	RowsFiltered int
	Values       int
	InRange      int
	Overflow     int
}

// Compute runs the full histogram pipeline. Parameters are validated before
// any data is touched.
func Compute(ds *dataset.Dataset, q HistogramQuery) (Result, Stats, error) {
	if err := q.TimeRange.Validate(); err != nil {
		return Result{}, Stats{}, err
	}
	if err := q.Options.Validate(); err != nil {
		return Result{}, Stats{}, err
	}

	filtered := FilterTimeRange(ds, q.TimeRange)
	stats := Stats{RowsFiltered: filtered.Len()}

	values, err := ExtractValues(filtered, q.Column)
	if err != nil {
		return Result{}, stats, err
	}
	stats.Values = len(values)
	if len(values) == 0 {
		return Result{}, stats, ErrEmptyResult
	}

	p := PartitionValues(values, q.Options.Threshold)
	stats.InRange, stats.Overflow = len(p.InRange), len(p.Overflow)

	h, err := BinPartition(p, q.Options)
	if err != nil {
		return Result{}, stats, err
	}

	mode, err := LocateMode(h)
	if err != nil {
		return Result{}, stats, err
	}

	return Assemble(h, mode), stats, nil
}
