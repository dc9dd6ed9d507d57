package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/roach88/tablediff/internal/table"
)

// ReadTableCSV reads a table whose first record is the header row.
// The encoding is sniffed from the first 2 KiB; Windows-1251 input is
// converted to UTF-8, anything else is read as UTF-8.
// Blank records are skipped; every other record must match the header
// width.
func ReadTableCSV(r io.Reader) (*table.Table, error) {
	br := bufio.NewReader(r)

	var dec io.Reader = br
	peek, _ := br.Peek(2048)
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			switch strings.ToLower(det.Charset) {
			case "windows-1251", "cp1251":
				dec = transform.NewReader(br, charmap.Windows1251.NewDecoder())
			}
		}
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t, err := table.New(header...)
	if err != nil {
		return nil, err
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		if blank(rec) {
			continue
		}
		if err := t.AddRow(rec...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
