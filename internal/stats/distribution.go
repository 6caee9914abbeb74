// Package stats computes the normalized frequency distributions the
// dashboard renders and exports.
package stats

import (
	"sort"

	"github.com/Santosestevialima/telemarketing/internal/dataset"
)

// Bucket is one distinct value of the target column with its share of rows.
type Bucket struct {
	Value   string
	Count   int
	Percent float64
}

// Distribution is a percentage frequency table over a categorical column,
// buckets sorted by value for stable presentation. Percentages sum to 100
// within floating-point tolerance; an empty input yields no buckets.
type Distribution struct {
	Column  string
	Total   int
	Buckets []Bucket
}

// Empty reports whether the distribution has no buckets.
func (d Distribution) Empty() bool { return len(d.Buckets) == 0 }

// Summarize computes the percentage share of each distinct value of column.
func Summarize(t *dataset.Table, column string) (Distribution, error) {
	i, ok := t.ColumnIndex(column)
	if !ok {
		return Distribution{}, &dataset.UnknownColumnError{Column: column}
	}
	d := Distribution{Column: column, Total: t.NumRows()}
	if d.Total == 0 {
		return d, nil
	}
	counts := make(map[string]int)
	for n := 0; n < t.NumRows(); n++ {
		counts[t.Row(n)[i]]++
	}
	d.Buckets = make([]Bucket, 0, len(counts))
	for v, c := range counts {
		d.Buckets = append(d.Buckets, Bucket{
			Value:   v,
			Count:   c,
			Percent: 100 * float64(c) / float64(d.Total),
		})
	}
	sort.Slice(d.Buckets, func(a, b int) bool {
		return d.Buckets[a].Value < d.Buckets[b].Value
	})
	return d, nil
}
