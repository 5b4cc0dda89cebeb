package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadExcel reads the first worksheet of an Excel workbook. The first row is
// the header; raw cell values are used so number formats do not leak into the
// parsed values.
func ReadExcel(path, name string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet, err := firstSheet(f)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &Dataset{Name: name, Columns: []string{}, Rows: []Row{}}, nil
	}

	return FromRecords(name, rows[0], rows[1:]), nil
}

// ReadExcelHeader reads only the header row of the first worksheet
func ReadExcelHeader(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet, err := firstSheet(f)
	if err != nil {
		return nil, err
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return []string{}, rows.Error()
	}
	return rows.Columns(excelize.Options{RawCellValue: true})
}

func firstSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	return sheets[0], nil
}
