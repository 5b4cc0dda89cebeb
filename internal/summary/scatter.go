package summary

import "histviz/internal/dataset"

// Scatter is the transport shape of a time/value series.
type Scatter struct {
	Times     []float64 `json:"times"`
	Values    []float64 `json:"values"`
	YScaleMax *float64  `json:"yScaleMax"`
}

// ScatterQuery selects the series to export.
type ScatterQuery struct {
	Column    string
	TimeRange TimeRange
	YScaleMax *float64
}

// ScatterSeries passes (time, value) pairs through, dropping rows where
// either side is missing. Returns ErrEmptyResult when no pair remains.
func ScatterSeries(ds *dataset.Dataset, q ScatterQuery) (Scatter, error) {
	if err := q.TimeRange.Validate(); err != nil {
		return Scatter{}, err
	}
	if q.YScaleMax != nil && !isFinite(*q.YScaleMax) {
		return Scatter{}, invalidParameter("yScaleMax", "must be a finite number")
	}

	idx, ok := ds.ColumnIndex(q.Column)
	if !ok {
		return Scatter{}, &ColumnError{Column: q.Column}
	}

	filtered := ds
	if q.TimeRange.Min != nil || q.TimeRange.Max != nil {
		filtered = FilterTimeRange(ds, q.TimeRange)
	}

	out := Scatter{
		Times:  make([]float64, 0, filtered.Len()),
		Values: make([]float64, 0, filtered.Len()),
	}
	for _, row := range filtered.Rows {
		t, v := row.At(0), row.At(idx)
		if !t.Valid || !v.Valid {
			continue
		}
		out.Times = append(out.Times, t.Value)
		out.Values = append(out.Values, v.Value)
	}
	if len(out.Times) == 0 {
		return Scatter{}, ErrEmptyResult
	}

	if q.YScaleMax != nil {
		y := *q.YScaleMax
		out.YScaleMax = &y
	}
	return out, nil
}
