package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SensorHeader is the header row of the fixture datasets.
var SensorHeader = []string{"time", "temperature", "pressure"}

// SensorRows returns n fixture rows: time i, temperature i*1.5, pressure 100+i.
func SensorRows(n int) [][]interface{} {
	rows := make([][]interface{}, n)
	for i := range rows {
		rows[i] = []interface{}{i + 1, float64(i+1) * 1.5, 100 + i}
	}
	return rows
}

// WriteXLSX writes header and rows to the first sheet of a new workbook at
// dir/name and returns its path.
func WriteXLSX(t *testing.T, dir, name string, header []string, rows [][]interface{}) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("create fixture dir: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		t.Fatalf("write fixture header: %v", err)
	}
	for i, row := range rows {
		row := row
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("fixture cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("write fixture row %d: %v", i, err)
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture workbook: %v", err)
	}
	return path
}

// WriteCSV writes header and rows as CSV to dir/name and returns its path.
func WriteCSV(t *testing.T, dir, name string, header []string, rows [][]interface{}) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("create fixture dir: %v", err)
	}

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture csv: %v", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		t.Fatalf("write fixture header: %v", err)
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			if v != nil {
				record[i] = fmt.Sprint(v)
			}
		}
		if err := w.Write(record); err != nil {
			t.Fatalf("write fixture row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush fixture csv: %v", err)
	}
	return path
}
