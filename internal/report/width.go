package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Marker prefixes.
const (
	MarkerSame    = "  "
	MarkerMissing = "- "
	MarkerExtra   = "+ "
)

// cellWidth measures display columns with a fixed condition so output does
// not depend on the terminal locale.
var cellWidth = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

func displayWidth(s string) int {
	return cellWidth.StringWidth(s)
}

func pad(s string, width int) string {
	return cellWidth.FillRight(s, width)
}

// writeLine writes marker + "| c1 | c2 |" + "\n". When widths is non-nil
// each cell is padded to its column width.
func writeLine(buf *strings.Builder, marker string, cells []string, widths []int) {
	writeCells(buf, marker, cells, widths)
	buf.WriteString("\n")
}

func writeCells(buf *strings.Builder, marker string, cells []string, widths []int) {
	buf.WriteString(marker)
	buf.WriteString("|")
	for i, c := range cells {
		buf.WriteString(" ")
		if widths != nil {
			c = pad(c, widths[i])
		}
		buf.WriteString(c)
		buf.WriteString(" |")
	}
}
