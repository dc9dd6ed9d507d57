package table

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTable matches every *MalformedTableError via errors.Is.
	ErrMalformedTable = errors.New("malformed table")

	// ErrFrozen is returned by AddRow once the table has been diffed.
	ErrFrozen = errors.New("table is frozen")
)

// MalformedTableError reports a table whose shape is invalid: no headers, or
// a row whose cell count differs from the header count.
type MalformedTableError struct {
	// Row is the 0-based row index, or -1 when the headers are at fault.
	Row int

	// Expected is the header count.
	Expected int

	// Actual is the offending row's cell count.
	Actual int
}

// Error implements the error interface.
func (e *MalformedTableError) Error() string {
	if e.Row < 0 {
		return "malformed table: at least one header is required"
	}
	return fmt.Sprintf("malformed table: row %d has %d cells, expected %d", e.Row, e.Actual, e.Expected)
}

// Is reports ErrMalformedTable as a match so callers can test the category
// without a type assertion.
func (e *MalformedTableError) Is(target error) bool {
	return target == ErrMalformedTable
}
