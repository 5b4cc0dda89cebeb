package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Cell is a single numeric-or-missing value.
type Cell struct {
	Value float64
	Valid bool
}

// Num returns a present cell holding v.
func Num(v float64) Cell {
	return Cell{Value: v, Valid: true}
}

// Missing returns an absent cell.
func Missing() Cell {
	return Cell{}
}

// Row is one record, aligned with Dataset.Columns.
type Row []Cell

// At returns the cell at column index i, treating short rows as missing.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// Dataset is an ordered sequence of rows. Column 0 is always the time axis.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []Row
}

// TimeColumn returns the name of the time axis column.
func (d *Dataset) TimeColumn() string {
	if len(d.Columns) == 0 {
		return ""
	}
	return d.Columns[0]
}

// ValueColumns returns every column except the time axis.
func (d *Dataset) ValueColumns() []string {
	if len(d.Columns) < 2 {
		return []string{}
	}
	out := make([]string, len(d.Columns)-1)
	copy(out, d.Columns[1:])
	return out
}

// ColumnIndex looks up a column by exact name.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	for i, c := range d.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// TimeExtent returns the smallest and largest present time-axis values.
// ok is false when no row carries a time value.
func (d *Dataset) TimeExtent() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range d.Rows {
		c := row.At(0)
		if !c.Valid {
			continue
		}
		ok = true
		if c.Value < lo {
			lo = c.Value
		}
		if c.Value > hi {
			hi = c.Value
		}
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// ParseCell converts a raw spreadsheet or CSV field into a Cell. Empty,
// non-numeric and non-finite fields are missing.
func ParseCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cell{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Cell{}
	}
	return Num(v)
}

// FromRecords builds a Dataset from a header row and string records.
func FromRecords(name string, header []string, records [][]string) *Dataset {
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		row := make(Row, len(cols))
		for i := range cols {
			if i < len(rec) {
				row[i] = ParseCell(rec[i])
			}
		}
		rows = append(rows, row)
	}

	return &Dataset{Name: name, Columns: cols, Rows: rows}
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
