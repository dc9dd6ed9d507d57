package assist

import (
	"fmt"
	"strings"
)

// ComparisonError is returned when an expected table and an actual
// collection differ. Report is the aligned diff.
type ComparisonError struct {
	Missing int    // rows with no matching item
	Extra   int    // items with no matching row
	Report  string // aligned report, newline terminated
}

// Error implements the error interface.
func (e *ComparisonError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "table comparison failed: %d missing, %d extra\n", e.Missing, e.Extra)
	buf.WriteString(e.Report)

	return buf.String()
}

// UnknownColumnsError is returned in strict mode when headers resolve to no
// member of the compared type.
type UnknownColumnsError struct {
	Type    string
	Columns []string
}

// Error implements the error interface.
func (e *UnknownColumnsError) Error() string {
	return fmt.Sprintf("the following fields do not exist on %s: %s", e.Type, strings.Join(e.Columns, ", "))
}
