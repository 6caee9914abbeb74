package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/Santosestevialima/telemarketing/internal/dataset"
)

// ToCSV serializes a table as semicolon-delimited text with a header row.
// The output round-trips through dataset.Load for any table whose cells
// contain no delimiter-breaking characters.
func ToCSV(t *dataset.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = dataset.Delimiter
	if err := w.Write(t.Columns()); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < t.NumRows(); i++ {
		if err := w.Write(t.Row(i)); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return buf.Bytes(), nil
}
