package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"github.com/roach88/tablediff/internal/table"
)

// LoadTableXLSX reads a table from one worksheet. An empty sheet name
// selects the first sheet.
func LoadTableXLSX(path, sheet string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return ReadTableXLSX(f, sheet)
}

// ReadTableXLSX is LoadTableXLSX over a reader. The first sheet row holds
// the headers. Rows are padded to the header width because excelize trims
// trailing empty cells; fully blank rows are skipped.
func ReadTableXLSX(r io.Reader, sheet string) (*table.Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	defer wb.Close()

	if sheet == "" {
		sheet = wb.GetSheetName(0)
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx: sheet %q has no header row", sheet)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	t, err := table.New(header...)
	if err != nil {
		return nil, err
	}

	for _, rec := range rows[1:] {
		if blank(rec) {
			continue
		}
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		if err := t.AddRow(rec...); err != nil {
			return nil, err
		}
	}
	return t, nil
}
