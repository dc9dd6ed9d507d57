package source

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// validIdentifier matches plain SQL identifiers (table/column names).
// Identifiers are interpolated into the query text, so nothing else is
// accepted.
var validIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TableQuery selects the rows of one table or view as actual items.
type TableQuery struct {
	// Table is the table or view name.
	Table string

	// Columns to select. Empty selects every column.
	Columns []string

	// Where filters rows by column equality. Values are bound as
	// parameters, never interpolated.
	Where map[string]any
}

// Compile converts the query to parameterized SQL.
// Returns (sql, params, error) tuple. Where columns are emitted in sorted
// order so the same query always compiles to the same text.
func (q TableQuery) Compile() (string, []any, error) {
	if !validIdentifier.MatchString(q.Table) {
		return "", nil, fmt.Errorf("invalid table name %q", q.Table)
	}

	selectClause := "*"
	if len(q.Columns) > 0 {
		for _, c := range q.Columns {
			if !validIdentifier.MatchString(c) {
				return "", nil, fmt.Errorf("invalid column name %q", c)
			}
		}
		selectClause = strings.Join(q.Columns, ", ")
	}

	var whereClause string
	var params []any
	if len(q.Where) > 0 {
		keys := make([]string, 0, len(q.Where))
		for k := range q.Where {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		conds := make([]string, len(keys))
		for i, k := range keys {
			if !validIdentifier.MatchString(k) {
				return "", nil, fmt.Errorf("invalid column name %q", k)
			}
			conds[i] = k + " = ?"
			params = append(params, q.Where[k])
		}
		whereClause = " WHERE " + strings.Join(conds, " AND ")
	}

	return fmt.Sprintf("SELECT %s FROM %s%s", selectClause, q.Table, whereClause), params, nil
}
