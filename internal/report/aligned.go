package report

import (
	"strings"

	"github.com/roach88/tablediff/internal/diff"
)

// Aligned wraps another Builder and pads every column to its widest cell
// across all lines, extra-item lines included.
type Aligned[T any] struct {
	inner Builder[T]
}

// NewAligned wraps inner.
func NewAligned[T any](inner Builder[T]) *Aligned[T] {
	return &Aligned[T]{inner: inner}
}

// Render implements Builder. Absent and empty inner output pass through
// untouched.
func (a *Aligned[T]) Render(r *diff.Result[T]) (string, bool) {
	msg, ok := a.inner.Render(r)
	if !ok || msg == "" {
		return msg, ok
	}
	return Align(msg), true
}

type parsedLine struct {
	marker string
	cells  []string
	table  bool
}

// Align re-pads pipe-framed lines so each column has one width.
//
// Whatever precedes the first '|' on a line is kept as its marker. Lines
// without a '|' are copied through. Every '|' separates cells, so a cell
// that itself contains '|' is split. Leading spaces inside a cell survive. Lines with fewer cells than the widest
// line are filled with empty cells. Line order and a missing final newline
// are preserved. Align is idempotent.
func Align(raw string) string {
	lines := strings.Split(raw, "\n")
	parsed := make([]parsedLine, len(lines))

	var widths []int
	for i, line := range lines {
		p := parseLine(line)
		parsed[i] = p
		if !p.table {
			continue
		}
		for col, c := range p.cells {
			if col >= len(widths) {
				widths = append(widths, 0)
			}
			if w := displayWidth(c); w > widths[col] {
				widths[col] = w
			}
		}
	}

	var buf strings.Builder
	for i, p := range parsed {
		if i > 0 {
			buf.WriteString("\n")
		}
		if !p.table {
			buf.WriteString(lines[i])
			continue
		}
		cells := p.cells
		for len(cells) < len(widths) {
			cells = append(cells, "")
		}
		writeCells(&buf, p.marker, cells, widths)
	}
	return buf.String()
}

func parseLine(line string) parsedLine {
	idx := strings.IndexByte(line, '|')
	if idx < 0 {
		return parsedLine{}
	}

	body := strings.TrimRight(line[idx+1:], " \t\r")
	body = strings.TrimSuffix(body, "|")

	parts := strings.Split(body, "|")
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = unframe(part)
	}
	return parsedLine{marker: line[:idx], cells: cells, table: true}
}

// unframe drops the single separator space on each side of a cell and the
// column padding after it. Leading whitespace inside the cell is kept.
func unframe(part string) string {
	part = strings.TrimPrefix(part, " ")
	return strings.TrimRight(part, " ")
}
