package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadCSV reads a comma separated file whose first record is the header
func ReadCSV(path, name string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &Dataset{Name: name, Columns: []string{}, Rows: []Row{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	header = trimBOM(header)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	return FromRecords(name, header, records), nil
}

// ReadCSVHeader reads only the header record
func ReadCSVHeader(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	return trimBOM(header), nil
}

// trimBOM drops a UTF-8 byte order mark written by Excel's CSV export
func trimBOM(header []string) []string {
	if len(header) > 0 && len(header[0]) >= 3 && header[0][:3] == "\xEF\xBB\xBF" {
		header[0] = header[0][3:]
	}
	return header
}
