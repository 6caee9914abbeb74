package pipeline_test

import (
	"testing"

	"github.com/Santosestevialima/telemarketing/internal/pipeline"
)

func TestParseFoldsSentinel(t *testing.T) {
	cases := []struct {
		name   string
		values []string
		all    bool
	}{
		{"only sentinel", []string{"all"}, true},
		{"sentinel with extras", []string{"admin.", "all", "services"}, true},
		{"explicit values", []string{"admin."}, false},
		{"empty list", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sel := pipeline.Parse(tc.values)
			if sel.IsAll() != tc.all {
				t.Fatalf("IsAll = %v, want %v", sel.IsAll(), tc.all)
			}
		})
	}
}

func TestZeroSelectionRetainsEverything(t *testing.T) {
	var sel pipeline.Selection
	if !sel.IsAll() || !sel.Matches("anything") {
		t.Fatal("zero selection should retain every value")
	}
}

func TestOnlyMatches(t *testing.T) {
	sel := pipeline.Only("yes")
	if !sel.Matches("yes") || sel.Matches("no") {
		t.Fatal("membership broken")
	}
}

func TestValuesSorted(t *testing.T) {
	sel := pipeline.Only("technician", "admin.")
	got := sel.Values()
	if len(got) != 2 || got[0] != "admin." || got[1] != "technician" {
		t.Fatalf("values = %v", got)
	}
	if pipeline.All().Values() != nil {
		t.Fatal("All should have nil values")
	}
}
