// Package diff compares an expected table with a collection of actual values.
//
// Compute walks the table rows in order and, for each row, consumes the
// first not-yet-consumed item that is equivalent to it. Rows with no partner
// are recorded as missing by their original index. Items nobody consumed are
// extras, kept in collection order.
//
// A nil table or nil item slice is not an error. It produces a degenerate
// Result with nothing missing and nothing extra, which report builders render
// as absent (nil table) or as the unmarked table (nil items).
package diff

import (
	"fmt"
	"sort"

	"github.com/roach88/tablediff/internal/table"
)

// Result is the outcome of one comparison. It references the table it was
// computed from; that table is frozen and never copied.
type Result[T any] struct {
	table   *table.Table
	missing map[int]struct{}
	order   []int
	extras  []T
}

// NewResult assembles a result directly. Every missing index must lie in
// [0, t.RowCount()). Duplicate indices collapse. A nil table accepts only
// an empty missing set.
func NewResult[T any](t *table.Table, missing []int, extras []T) (*Result[T], error) {
	rows := 0
	if t != nil {
		rows = t.RowCount()
		t.Freeze()
	}

	r := &Result[T]{
		table:   t,
		missing: make(map[int]struct{}, len(missing)),
		extras:  append([]T(nil), extras...),
	}
	for _, i := range missing {
		if i < 0 || i >= rows {
			return nil, fmt.Errorf("missing row index %d out of range [0,%d)", i, rows)
		}
		if _, dup := r.missing[i]; dup {
			continue
		}
		r.missing[i] = struct{}{}
		r.order = append(r.order, i)
	}
	sort.Ints(r.order)
	return r, nil
}

// Table returns the compared table, or nil for a degenerate result.
func (r *Result[T]) Table() *table.Table { return r.table }

// IsMissing reports whether row i had no matching item.
func (r *Result[T]) IsMissing(i int) bool {
	_, ok := r.missing[i]
	return ok
}

// Missing returns the missing row indices in ascending order.
func (r *Result[T]) Missing() []int {
	return append([]int(nil), r.order...)
}

// Extras returns the unmatched items in collection order.
func (r *Result[T]) Extras() []T {
	return append([]T(nil), r.extras...)
}

// Empty reports whether nothing is missing and nothing is extra.
func (r *Result[T]) Empty() bool {
	return len(r.missing) == 0 && len(r.extras) == 0
}

// Matched returns the row indices that found a partner, ascending.
func (r *Result[T]) Matched() []int {
	if r.table == nil {
		return nil
	}
	out := make([]int, 0, r.table.RowCount()-len(r.order))
	for i := 0; i < r.table.RowCount(); i++ {
		if !r.IsMissing(i) {
			out = append(out, i)
		}
	}
	return out
}
