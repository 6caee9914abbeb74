package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// Delimiter used by the bank marketing exports.
const Delimiter = ';'

// Load parses uploaded bytes into a Table. It attempts a semicolon-delimited
// text parse first and falls back to a spreadsheet parse; if both fail it
// returns an UnsupportedFormatError carrying the spreadsheet failure.
func Load(data []byte, name string) (*Table, error) {
	t, csvErr := parseDelimited(data)
	if csvErr == nil {
		return t, nil
	}
	t, xlsxErr := parseSpreadsheet(data)
	if xlsxErr == nil {
		return t, nil
	}
	return nil, &UnsupportedFormatError{Name: name, Err: xlsxErr}
}

func parseDelimited(data []byte) (*Table, error) {
	// Binary uploads (xlsx is a ZIP) must not sneak through the text path.
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return nil, fmt.Errorf("not delimited text")
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = Delimiter
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return New(header, rows)
}

func parseSpreadsheet(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	header := all[0]
	rows := make([][]string, 0, len(all)-1)
	for _, r := range all[1:] {
		// excelize trims trailing empty cells; pad back to header width.
		if len(r) < len(header) {
			padded := make([]string, len(header))
			copy(padded, r)
			r = padded
		} else if len(r) > len(header) {
			r = r[:len(header)]
		}
		rows = append(rows, r)
	}
	return New(header, rows)
}
