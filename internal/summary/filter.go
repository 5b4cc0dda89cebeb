package summary

import (
	"math"

	"histviz/internal/dataset"
)

// TimeRange bounds the time axis. A nil bound resolves to the dataset's own
// extreme at filter time.
type TimeRange struct {
	Min *float64
	Max *float64
}

// Bounds returns a TimeRange with both ends set.
func Bounds(min, max float64) TimeRange {
	return TimeRange{Min: &min, Max: &max}
}

// Validate rejects non-finite bounds and ranges whose min exceeds max.
func (tr TimeRange) Validate() error {
	if tr.Min != nil && !isFinite(*tr.Min) {
		return invalidParameter("timeRange", "min must be a finite number")
	}
	if tr.Max != nil && !isFinite(*tr.Max) {
		return invalidParameter("timeRange", "max must be a finite number")
	}
	if tr.Min != nil && tr.Max != nil && *tr.Min > *tr.Max {
		return invalidParameter("timeRange", "min %g is greater than max %g", *tr.Min, *tr.Max)
	}
	return nil
}

// Resolve fills absent bounds from the dataset's time-axis extrema. ok is
// false when a bound is absent and the dataset has no time values.
func (tr TimeRange) Resolve(ds *dataset.Dataset) (lo, hi float64, ok bool) {
	if tr.Min != nil && tr.Max != nil {
		return *tr.Min, *tr.Max, true
	}

	dataMin, dataMax, found := ds.TimeExtent()
	if !found {
		return 0, 0, false
	}

	lo, hi = dataMin, dataMax
	if tr.Min != nil {
		lo = *tr.Min
	}
	if tr.Max != nil {
		hi = *tr.Max
	}
	return lo, hi, true
}

// FilterTimeRange keeps the rows whose time-axis value lies in [min, max],
// inclusive at both ends. Rows are selected by value, not position, and rows
// without a time value never match. The result may be empty.
func FilterTimeRange(ds *dataset.Dataset, tr TimeRange) *dataset.Dataset {
	out := &dataset.Dataset{
		Name:    ds.Name,
		Columns: ds.Columns,
		Rows:    []dataset.Row{},
	}

	lo, hi, ok := tr.Resolve(ds)
	if !ok {
		return out
	}

	for _, row := range ds.Rows {
		t := row.At(0)
		if !t.Valid {
			continue
		}
		if t.Value >= lo && t.Value <= hi {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
