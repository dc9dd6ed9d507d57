// Package report renders difference results as text for failure messages.
//
// A Builder turns a *diff.Result into a report. Render returns ok=false when
// there is nothing to render (the result references no table); callers must
// not confuse that with an empty report.
//
// # Markers
//
// Every line starts with a two character marker:
//
//	"  " header, or a row that matched
//	"- " an expected row with no matching item
//	"+ " an item with no matching row
//
// # Stages
//
// Base renders the header and the table rows, padded to the table's own
// widths, then one raw line per extra item. Aligned wraps any Builder and
// re-pads every line so extra-item lines share the same column widths:
//
//	b := report.NewAligned(report.NewBase[Order]())
//	msg, ok := b.Render(result)
//
// Output of Base:
//
//	  | One   | Two | Three |
//	- | testa | 1   | W     |
//	+ | B1 | 1234567 | ZYXW |
//
// Output of Aligned over it:
//
//	  | One   | Two     | Three |
//	- | testa | 1       | W     |
//	+ | B1    | 1234567 | ZYXW  |
package report
