package report

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/roach88/tablediff/internal/diff"
	"github.com/roach88/tablediff/internal/locale"
	"github.com/roach88/tablediff/internal/match"
)

// Pretty renders the same rows as Base inside a box-drawn table, with the
// marker in a leading column. Intended for terminals, not for assertion
// messages compared verbatim.
type Pretty[T any] struct {
	locale locale.Context
	style  table.Style
}

// NewPretty returns a box renderer using the light line style. Header text
// is kept as written.
func NewPretty[T any](ctx locale.Context) *Pretty[T] {
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	return &Pretty[T]{locale: ctx, style: style}
}

// Render implements Builder.
func (p *Pretty[T]) Render(r *diff.Result[T]) (string, bool) {
	if r == nil || r.Table() == nil {
		return "", false
	}
	t := r.Table()
	headers := t.Headers()

	tw := table.NewWriter()
	tw.SetStyle(p.style)

	header := make(table.Row, 0, len(headers)+1)
	header = append(header, "")
	for _, h := range headers {
		header = append(header, h)
	}
	tw.AppendHeader(header)

	for i := 0; i < t.RowCount(); i++ {
		marker := ""
		if r.IsMissing(i) {
			marker = strings.TrimSpace(MarkerMissing)
		}
		row := make(table.Row, 0, len(headers)+1)
		row = append(row, marker)
		for _, c := range t.Row(i) {
			row = append(row, c)
		}
		tw.AppendRow(row)
	}

	for _, item := range r.Extras() {
		row := make(table.Row, 0, len(headers)+1)
		row = append(row, strings.TrimSpace(MarkerExtra))
		for _, h := range headers {
			v, _ := match.Lookup(item, h)
			row = append(row, p.locale.Format(v))
		}
		tw.AppendRow(row)
	}

	return tw.Render() + "\n", true
}
