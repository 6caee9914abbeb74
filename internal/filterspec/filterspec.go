// Package filterspec reads the YAML filter descriptions consumed by the
// filter command. A spec mirrors one dashboard form submission: an age
// range, per-column value lists ("all" meaning no restriction), and a chart
// kind.
package filterspec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Santosestevialima/telemarketing/internal/chart"
	"github.com/Santosestevialima/telemarketing/internal/dataset"
	"github.com/Santosestevialima/telemarketing/internal/pipeline"
)

// AgeBounds is a spec's closed age interval.
type AgeBounds struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Spec is the parsed filter description. A nil Age means the spec does not
// restrict by age; callers substitute the dataset's own bounds.
type Spec struct {
	Age     *AgeBounds          `yaml:"age"`
	Columns map[string][]string `yaml:"columns"`
	Chart   string              `yaml:"chart"`
}

// Parse decodes and validates a YAML spec.
func Parse(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode filter spec: %w", err)
	}
	if s.Age != nil && s.Age.Min > s.Age.Max {
		return nil, fmt.Errorf("age.min %d greater than age.max %d", s.Age.Min, s.Age.Max)
	}
	for col := range s.Columns {
		if !isFilterColumn(col) {
			return nil, fmt.Errorf("unknown filter column %q", col)
		}
	}
	if s.Chart != "" {
		if _, err := chart.ParseKind(s.Chart); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// ParseFile reads and parses a spec from disk.
func ParseFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filter spec: %w", err)
	}
	return Parse(data)
}

// Range returns the spec's age interval; ok is false when the spec omits
// the age key, in which case the caller must fall back to the dataset's own
// bounds rather than filtering against a zero range.
func (s *Spec) Range() (rng pipeline.AgeRange, ok bool) {
	if s.Age == nil {
		return pipeline.AgeRange{}, false
	}
	return pipeline.AgeRange{Min: s.Age.Min, Max: s.Age.Max}, true
}

// Selections expands the spec into the fixed filter-column order. Columns
// absent from the spec retain every value.
func (s *Spec) Selections() []pipeline.ColumnSelection {
	out := make([]pipeline.ColumnSelection, 0, len(dataset.FilterColumns))
	for _, col := range dataset.FilterColumns {
		values, ok := s.Columns[col]
		sel := pipeline.All()
		if ok {
			sel = pipeline.Parse(values)
		}
		out = append(out, pipeline.ColumnSelection{Column: col, Selection: sel})
	}
	return out
}

// Kind returns the chart kind, defaulting to bars.
func (s *Spec) Kind() chart.Kind {
	if s.Chart == "" {
		return chart.KindBar
	}
	k, _ := chart.ParseKind(s.Chart)
	return k
}

func isFilterColumn(name string) bool {
	for _, c := range dataset.FilterColumns {
		if c == name {
			return true
		}
	}
	return false
}
