package export

import (
	"strconv"

	"github.com/Santosestevialima/telemarketing/internal/dataset"
	"github.com/Santosestevialima/telemarketing/internal/stats"
)

// DistributionTable converts a distribution into a two-column table so it
// can be exported through the same serializers as the dataset itself.
func DistributionTable(d stats.Distribution) *dataset.Table {
	rows := make([][]string, 0, len(d.Buckets))
	for _, b := range d.Buckets {
		rows = append(rows, []string{
			b.Value,
			strconv.FormatFloat(b.Percent, 'f', -1, 64),
		})
	}
	t, err := dataset.New([]string{d.Column, "percent"}, rows)
	if err != nil {
		// Two fixed columns and two-cell rows cannot mismatch.
		panic(err)
	}
	return t
}
