package summary

import "histviz/internal/dataset"

// ExtractValues projects one column, dropping missing cells and keeping the
// original row order.
func ExtractValues(ds *dataset.Dataset, column string) ([]float64, error) {
	idx, ok := ds.ColumnIndex(column)
	if !ok {
		return nil, &ColumnError{Column: column}
	}

	values := make([]float64, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		if c := row.At(idx); c.Valid {
			values = append(values, c.Value)
		}
	}
	return values, nil
}
