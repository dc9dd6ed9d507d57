package report

import (
	"strings"

	"github.com/roach88/tablediff/internal/diff"
	"github.com/roach88/tablediff/internal/locale"
	"github.com/roach88/tablediff/internal/match"
)

// Builder renders a difference result. ok is false when there is nothing
// to render.
type Builder[T any] interface {
	Render(r *diff.Result[T]) (msg string, ok bool)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc[T any] func(r *diff.Result[T]) (string, bool)

// Render calls f(r).
func (f BuilderFunc[T]) Render(r *diff.Result[T]) (string, bool) { return f(r) }

// Base renders the unaligned report: header, table rows with their markers
// in table order, then one "+ " line per extra item.
type Base[T any] struct {
	locale locale.Context
}

// NewBase returns a base builder formatting extra-item values with the
// invariant context.
func NewBase[T any]() *Base[T] {
	return &Base[T]{locale: locale.Invariant}
}

// WithLocale returns a copy of b that formats extra-item values with ctx.
func (b *Base[T]) WithLocale(ctx locale.Context) *Base[T] {
	return &Base[T]{locale: ctx}
}

// Render implements Builder.
func (b *Base[T]) Render(r *diff.Result[T]) (string, bool) {
	if r == nil || r.Table() == nil {
		return "", false
	}
	t := r.Table()

	widths := make([]int, t.ColumnCount())
	headers := t.Headers()
	for i, h := range headers {
		widths[i] = displayWidth(h)
	}
	for row := 0; row < t.RowCount(); row++ {
		for col := range widths {
			if w := displayWidth(t.Cell(row, col)); w > widths[col] {
				widths[col] = w
			}
		}
	}

	var buf strings.Builder
	writeLine(&buf, MarkerSame, headers, widths)
	for row := 0; row < t.RowCount(); row++ {
		marker := MarkerSame
		if r.IsMissing(row) {
			marker = MarkerMissing
		}
		writeLine(&buf, marker, t.Row(row), widths)
	}

	for _, item := range r.Extras() {
		cells := make([]string, len(headers))
		for i, h := range headers {
			v, _ := match.Lookup(item, h)
			cells[i] = b.locale.Format(v)
		}
		writeLine(&buf, MarkerExtra, cells, nil)
	}

	return buf.String(), true
}
