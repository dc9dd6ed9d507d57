package table

import "sync/atomic"

// Table holds ordered headers and ordered rows of string cells.
//
// Duplicate headers are allowed. Lookups that resolve a header by name see
// the first occurrence.
type Table struct {
	headers []string
	rows    [][]string
	frozen  atomic.Bool
}

// New creates an empty table with the given headers.
// Returns *MalformedTableError if no headers are given.
func New(headers ...string) (*Table, error) {
	if len(headers) == 0 {
		return nil, &MalformedTableError{Row: -1}
	}
	return &Table{headers: append([]string(nil), headers...)}, nil
}

// MustNew is like New but panics on error. Intended for fixtures and tests.
func MustNew(headers ...string) *Table {
	t, err := New(headers...)
	if err != nil {
		panic(err)
	}
	return t
}

// FromRows builds a table in one step. The first malformed row aborts
// construction.
func FromRows(headers []string, rows [][]string) (*Table, error) {
	t, err := New(headers...)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := t.AddRow(row...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// AddRow appends a row. The cell count must equal the header count.
func (t *Table) AddRow(cells ...string) error {
	if t.frozen.Load() {
		return ErrFrozen
	}
	if len(cells) != len(t.headers) {
		return &MalformedTableError{
			Row:      len(t.rows),
			Expected: len(t.headers),
			Actual:   len(cells),
		}
	}
	t.rows = append(t.rows, append([]string(nil), cells...))
	return nil
}

// Freeze makes the table read-only. Calling it more than once is harmless.
func (t *Table) Freeze() {
	t.frozen.Store(true)
}

// Frozen reports whether AddRow is still permitted.
func (t *Table) Frozen() bool {
	return t.frozen.Load()
}

// ColumnCount returns the number of headers.
func (t *Table) ColumnCount() int { return len(t.headers) }

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.rows) }

// Header returns the header at column i.
func (t *Table) Header(i int) string { return t.headers[i] }

// Headers returns a copy of the headers.
func (t *Table) Headers() []string {
	return append([]string(nil), t.headers...)
}

// Cell returns the cell at (row, col).
func (t *Table) Cell(row, col int) string { return t.rows[row][col] }

// Row returns a copy of row i.
func (t *Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

// ColumnIndex returns the first column whose header equals name exactly,
// or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.headers {
		if h == name {
			return i
		}
	}
	return -1
}
