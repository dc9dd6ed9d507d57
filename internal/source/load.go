// Package source loads expected tables and actual items from files.
//
// Expected tables come from YAML, CSV, XLSX or CUE. Actual items are plain
// maps keyed by field name, so any source that yields rows (YAML/JSON lists,
// CSV/XLSX sheets, SQLite queries) can play the actual side.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/tablediff/internal/table"
)

// ErrUnsupportedFormat is returned for file extensions no loader handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Item is one actual value as loaded from a file or database.
type Item = map[string]any

// LoadTable picks a table loader by file extension.
func LoadTable(path string) (*table.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		return LoadTableYAML(path)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open table file: %w", err)
		}
		defer f.Close()
		return ReadTableCSV(f)
	case ".xlsx":
		return LoadTableXLSX(path, "")
	case ".cue":
		return LoadTableCUE(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadItems picks an item loader by file extension. query is required for
// SQLite databases and ignored otherwise.
func LoadItems(ctx context.Context, path, query string) ([]Item, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		return LoadItemsYAML(path)
	case ".csv", ".xlsx":
		t, err := LoadTable(path)
		if err != nil {
			return nil, err
		}
		return ItemsFromTable(t), nil
	case ".db", ".sqlite", ".sqlite3":
		if query == "" {
			return nil, fmt.Errorf("a query is required to read items from %s", path)
		}
		return QuerySQLite(ctx, path, query)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ItemsFromTable turns each row into a map keyed by header. With duplicate
// headers the first column wins.
func ItemsFromTable(t *table.Table) []Item {
	items := make([]Item, 0, t.RowCount())
	for row := 0; row < t.RowCount(); row++ {
		item := make(Item, t.ColumnCount())
		for col := 0; col < t.ColumnCount(); col++ {
			h := t.Header(col)
			if t.ColumnIndex(h) != col {
				continue
			}
			item[h] = t.Cell(row, col)
		}
		items = append(items, item)
	}
	return items
}

// cellString converts a decoded scalar into a cell.
func cellString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
