package dataset

// Column names the bank marketing pipeline relies on.
const (
	AgeColumn     = "age"
	OutcomeColumn = "y"
)

// FilterColumns lists the categorical columns exposed as filters, in the
// order they appear on the form and in the pipeline.
var FilterColumns = []string{
	"job",
	"marital",
	"default",
	"housing",
	"loan",
	"contact",
	"month",
	"day_of_week",
}

// RequiredColumns returns every column an uploaded dataset must contain.
func RequiredColumns() []string {
	out := make([]string, 0, len(FilterColumns)+2)
	out = append(out, AgeColumn)
	out = append(out, FilterColumns...)
	out = append(out, OutcomeColumn)
	return out
}
