package source

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tablediff/internal/table"
)

// TableDoc is the YAML/JSON shape of an expected table:
//
//	headers: [Name, Qty]
//	rows:
//	  - [apple, 3]
//	  - [pear, 1]
//
// Scalar cells are stringified; null cells become "".
type TableDoc struct {
	Headers []string `yaml:"headers" json:"headers"`
	Rows    [][]any  `yaml:"rows" json:"rows"`
}

// Table converts the document into a table.
func (d TableDoc) Table() (*table.Table, error) {
	rows := make([][]string, len(d.Rows))
	for i, r := range d.Rows {
		cells := make([]string, len(r))
		for j, c := range r {
			cells[j] = cellString(c)
		}
		rows[i] = cells
	}
	return table.FromRows(d.Headers, rows)
}

// LoadTableYAML reads a TableDoc from a YAML or JSON file. Unknown keys are
// rejected.
func LoadTableYAML(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table file: %w", err)
	}

	var doc TableDoc
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse table %s: %w", path, err)
	}

	t, err := doc.Table()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadItemsYAML reads a list of objects from a YAML or JSON file. An empty
// document yields an empty, non-nil slice.
func LoadItemsYAML(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file: %w", err)
	}

	var items []Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse items %s: %w", path, err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}
