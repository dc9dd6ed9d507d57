package diff

import (
	"github.com/roach88/tablediff/internal/locale"
	"github.com/roach88/tablediff/internal/match"
	"github.com/roach88/tablediff/internal/table"
)

// Equivalence decides whether item satisfies table row.
type Equivalence[T any] func(t *table.Table, row int, item T) bool

type options[T any] struct {
	equivalent Equivalence[T]
	locale     locale.Context
}

// Option configures Compute.
type Option[T any] func(*options[T])

// WithEquivalence replaces the default cell-by-cell equivalence.
func WithEquivalence[T any](eq Equivalence[T]) Option[T] {
	return func(o *options[T]) { o.equivalent = eq }
}

// WithLocale sets the formatting context used by the default equivalence.
func WithLocale[T any](ctx locale.Context) Option[T] {
	return func(o *options[T]) { o.locale = ctx }
}

// CellsEqual returns the default equivalence: for every column, the cell
// equals the smart-matched member rendered through ctx. A header with no
// matching member compares against "".
func CellsEqual[T any](ctx locale.Context) Equivalence[T] {
	return func(t *table.Table, row int, item T) bool {
		for col := 0; col < t.ColumnCount(); col++ {
			v, _ := match.Lookup(item, t.Header(col))
			if ctx.Format(v) != t.Cell(row, col) {
				return false
			}
		}
		return true
	}
}

// Compute compares t against items. See the package documentation for the
// matching rules. Runs in O(rows × items) equivalence checks.
func Compute[T any](t *table.Table, items []T, opts ...Option[T]) *Result[T] {
	o := options[T]{locale: locale.Invariant}
	for _, opt := range opts {
		opt(&o)
	}
	if o.equivalent == nil {
		o.equivalent = CellsEqual[T](o.locale)
	}

	// A nil table or nil item slice is a degenerate comparison; an empty
	// non-nil slice is compared normally.
	if t == nil || items == nil {
		r, _ := NewResult[T](t, nil, nil)
		return r
	}
	t.Freeze()

	consumed := make([]bool, len(items))
	var missing []int
	for row := 0; row < t.RowCount(); row++ {
		found := false
		for i, item := range items {
			if consumed[i] {
				continue
			}
			if o.equivalent(t, row, item) {
				consumed[i] = true
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, row)
		}
	}

	var extras []T
	for i, item := range items {
		if !consumed[i] {
			extras = append(extras, item)
		}
	}

	// Indices come from the loop above, so NewResult cannot fail.
	r, _ := NewResult(t, missing, extras)
	return r
}
