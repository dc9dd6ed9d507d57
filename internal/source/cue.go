package source

import (
	"fmt"
	"os"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/tablediff/internal/table"
)

// LoadTableCUE reads an expected table declared in CUE:
//
//	headers: ["Name", "Qty"]
//	rows: [
//		["apple", 3],
//		["pear", 1],
//	]
//
// Cells may be strings, numbers, bools or null. CUE constraints and
// references are evaluated first, so rows can be computed.
func LoadTableCUE(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table file: %w", err)
	}
	return CompileTableCUE(data, path)
}

// CompileTableCUE is LoadTableCUE over source bytes. filename is used in
// error positions only.
func CompileTableCUE(src []byte, filename string) (*table.Table, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compiling %s: %w", filename, err)
	}

	headersVal := v.LookupPath(cue.ParsePath("headers"))
	if !headersVal.Exists() {
		return nil, fmt.Errorf("%s: headers is required", filename)
	}
	var headers []string
	if err := headersVal.Decode(&headers); err != nil {
		return nil, fmt.Errorf("%s: headers: %w", filename, err)
	}

	t, err := table.New(headers...)
	if err != nil {
		return nil, err
	}

	rowsVal := v.LookupPath(cue.ParsePath("rows"))
	if !rowsVal.Exists() {
		return t, nil
	}
	rows, err := rowsVal.List()
	if err != nil {
		return nil, fmt.Errorf("%s: rows: %w", filename, err)
	}
	for i := 0; rows.Next(); i++ {
		cells, err := cueRow(rows.Value())
		if err != nil {
			return nil, fmt.Errorf("%s: rows[%d]: %w", filename, i, err)
		}
		if err := t.AddRow(cells...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func cueRow(v cue.Value) ([]string, error) {
	iter, err := v.List()
	if err != nil {
		return nil, err
	}
	var cells []string
	for iter.Next() {
		c, err := cueCell(iter.Value())
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return cells, nil
}

func cueCell(v cue.Value) (string, error) {
	switch v.Kind() {
	case cue.NullKind:
		return "", nil
	case cue.StringKind:
		return v.String()
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	default:
		return "", fmt.Errorf("unsupported cell kind %v", v.Kind())
	}
}
