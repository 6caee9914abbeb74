package pipeline

import (
	"fmt"
	"strconv"

	"github.com/Santosestevialima/telemarketing/internal/dataset"
)

// AgeRange is a closed interval over the age column; both ends inclusive.
type AgeRange struct {
	Min int
	Max int
}

// InvalidRangeError indicates Min > Max. The range is derived from the
// dataset's own bounds, so seeing one is a caller bug.
type InvalidRangeError struct {
	Min, Max int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid age range [%d, %d]", e.Min, e.Max)
}

// ColumnSelection pairs a categorical column with the values to retain.
type ColumnSelection struct {
	Column    string
	Selection Selection
}

// ByCategory returns the rows whose value in column is retained by sel,
// preserving order. An all-values selection returns the input table itself;
// tables are read-only so identity is fine.
func ByCategory(t *dataset.Table, column string, sel Selection) (*dataset.Table, error) {
	i, ok := t.ColumnIndex(column)
	if !ok {
		return nil, &dataset.UnknownColumnError{Column: column}
	}
	if sel.IsAll() {
		return t, nil
	}
	return t.Select(func(row []string) bool {
		return sel.Matches(row[i])
	}), nil
}

// Apply composes the age range predicate with each categorical filter in
// list order and returns the surviving rows. An empty result is valid.
func Apply(t *dataset.Table, rng AgeRange, sels []ColumnSelection) (*dataset.Table, error) {
	if rng.Min > rng.Max {
		return nil, &InvalidRangeError{Min: rng.Min, Max: rng.Max}
	}
	ai, ok := t.ColumnIndex(dataset.AgeColumn)
	if !ok {
		return nil, &dataset.UnknownColumnError{Column: dataset.AgeColumn}
	}
	var parseErr error
	out := t.Select(func(row []string) bool {
		if parseErr != nil {
			return false
		}
		age, err := strconv.Atoi(row[ai])
		if err != nil {
			parseErr = fmt.Errorf("parse %s %q: %w", dataset.AgeColumn, row[ai], err)
			return false
		}
		return age >= rng.Min && age <= rng.Max
	})
	if parseErr != nil {
		return nil, parseErr
	}
	for _, cs := range sels {
		var err error
		out, err = ByCategory(out, cs.Column, cs.Selection)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
