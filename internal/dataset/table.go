package dataset

import (
	"fmt"
	"sort"
	"strconv"
)

// Table is an ordered, immutable collection of rows over a fixed named-column
// schema. Cells are stored as strings; numeric columns are parsed on access.
// Transforms return new Tables and never mutate the receiver.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]string
}

// New builds a Table from a header and rows. Every row must match the header
// width.
func New(cols []string, rows [][]string) (*Table, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("empty header")
	}
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		index[c] = i
	}
	for i, r := range rows {
		if len(r) != len(cols) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(r), len(cols))
		}
	}
	return &Table{cols: cols, index: index, rows: rows}, nil
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return len(t.rows) }

// Row returns the i-th row. Callers must treat it as read-only.
func (t *Table) Row(i int) []string { return t.rows[i] }

// ColumnIndex resolves a column name to its position.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// RequireColumns fails with UnknownColumnError on the first missing name.
func (t *Table) RequireColumns(names ...string) error {
	for _, n := range names {
		if _, ok := t.index[n]; !ok {
			return &UnknownColumnError{Column: n}
		}
	}
	return nil
}

// Select returns a new Table containing the rows for which keep returns true,
// preserving order. The rows are shared with the receiver, not copied.
func (t *Table) Select(keep func(row []string) bool) *Table {
	var rows [][]string
	for _, r := range t.rows {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return &Table{cols: t.cols, index: t.index, rows: rows}
}

// Head returns the first n rows, or all rows if fewer.
func (t *Table) Head(n int) *Table {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	return &Table{cols: t.cols, index: t.index, rows: t.rows[:n]}
}

// DistinctSorted returns the sorted distinct values of a column.
func (t *Table) DistinctSorted(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, &UnknownColumnError{Column: name}
	}
	seen := make(map[string]struct{})
	for _, r := range t.rows {
		seen[r[i]] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// IntBounds returns the minimum and maximum of an integer column. An empty
// table yields (0, 0).
func (t *Table) IntBounds(name string) (min, max int, err error) {
	i, ok := t.index[name]
	if !ok {
		return 0, 0, &UnknownColumnError{Column: name}
	}
	for n, r := range t.rows {
		v, perr := strconv.Atoi(r[i])
		if perr != nil {
			return 0, 0, fmt.Errorf("column %q row %d: %w", name, n, perr)
		}
		if n == 0 || v < min {
			min = v
		}
		if n == 0 || v > max {
			max = v
		}
	}
	return min, max, nil
}

// Equal reports whether two tables have identical schema and cells.
func (t *Table) Equal(o *Table) bool {
	if len(t.cols) != len(o.cols) || len(t.rows) != len(o.rows) {
		return false
	}
	for i := range t.cols {
		if t.cols[i] != o.cols[i] {
			return false
		}
	}
	for i := range t.rows {
		for j := range t.rows[i] {
			if t.rows[i][j] != o.rows[i][j] {
				return false
			}
		}
	}
	return true
}
