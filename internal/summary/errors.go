package summary

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound is returned when the requested column is not in the dataset schema
	ErrColumnNotFound = errors.New("column not found")
	// ErrEmptyResult is returned when filtering or extraction leaves nothing to summarize
	ErrEmptyResult = errors.New("empty result")
	// ErrInvalidParameter is returned for options rejected before binning starts
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ParameterError identifies the option that was rejected.
type ParameterError struct {
	Field  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidParameter) hold for every ParameterError.
func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func invalidParameter(field, format string, args ...interface{}) error {
	return &ParameterError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ColumnError names the column that could not be found.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

func (e *ColumnError) Is(target error) bool {
	return target == ErrColumnNotFound
}
