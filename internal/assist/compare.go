// Package assist is the test-facing entry point: compare an expected table
// with actual values and get an error carrying a readable diff.
//
//	err := assist.CompareToSet(expected, orders)
//	require.NoError(t, err)
//
// On mismatch the error message looks like:
//
//	table comparison failed: 1 missing, 1 extra
//	  | Id | Total |
//	- | 7  | 10.5  |
//	+ | 7  | 11    |
package assist

import (
	"log/slog"
	"reflect"

	"github.com/roach88/tablediff/internal/diff"
	"github.com/roach88/tablediff/internal/locale"
	"github.com/roach88/tablediff/internal/match"
	"github.com/roach88/tablediff/internal/report"
	"github.com/roach88/tablediff/internal/table"
)

type config struct {
	locale        locale.Context
	strictColumns bool
	logger        *slog.Logger
}

// Option configures CompareToSet.
type Option func(*config)

// WithLocale formats actual values with ctx for comparison and rendering.
func WithLocale(ctx locale.Context) Option {
	return func(c *config) { c.locale = ctx }
}

// WithStrictColumns rejects headers that match no field of the element
// type before comparing. Has no effect for map element types.
func WithStrictColumns() Option {
	return func(c *config) { c.strictColumns = true }
}

// WithLogger sets the logger for debug output. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// CompareToSet checks that items and the rows of t correspond one to one,
// in any order. It returns nil on success, *ComparisonError on mismatch,
// or *UnknownColumnsError in strict mode.
func CompareToSet[T any](t *table.Table, items []T, opts ...Option) error {
	cfg := config{locale: locale.Invariant, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.strictColumns && t != nil {
		if err := checkColumns[T](t); err != nil {
			return err
		}
	}

	result := diff.Compute(t, items, diff.WithLocale[T](cfg.locale))
	cfg.logger.Debug("table compared",
		"missing", len(result.Missing()),
		"extra", len(result.Extras()),
		"locale", cfg.locale.String())

	if result.Empty() {
		return nil
	}
	return NewComparisonError(result, cfg.locale)
}

// NewComparisonError renders result with the aligned builder.
func NewComparisonError[T any](result *diff.Result[T], ctx locale.Context) *ComparisonError {
	b := report.NewAligned[T](report.NewBase[T]().WithLocale(ctx))
	msg, _ := b.Render(result)

	return &ComparisonError{
		Missing: len(result.Missing()),
		Extra:   len(result.Extras()),
		Report:  msg,
	}
}

func checkColumns[T any](t *table.Table) error {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	unknown := match.IndexFor(typ).Unmatched(t.Headers())
	if len(unknown) > 0 {
		return &UnknownColumnsError{Type: typ.String(), Columns: unknown}
	}
	return nil
}
