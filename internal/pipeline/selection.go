package pipeline

import "sort"

// Sentinel accepted at the form boundary to mean "retain every value".
const Sentinel = "all"

// Selection is the set of values a user wants retained for one categorical
// column: either every value, or an explicit set. The zero value retains
// everything.
type Selection struct {
	values map[string]struct{}
}

// All returns a selection that retains every value.
func All() Selection { return Selection{} }

// Only returns a selection retaining exactly the given values.
func Only(values ...string) Selection {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return Selection{values: set}
}

// Parse folds raw form values into a Selection. The sentinel wins over any
// other entries in the list, so a submission like {"admin.", "all"} retains
// everything.
func Parse(values []string) Selection {
	for _, v := range values {
		if v == Sentinel {
			return All()
		}
	}
	return Only(values...)
}

// IsAll reports whether the selection retains every value.
func (s Selection) IsAll() bool { return s.values == nil }

// Matches reports whether a cell value is retained.
func (s Selection) Matches(v string) bool {
	if s.values == nil {
		return true
	}
	_, ok := s.values[v]
	return ok
}

// Values returns the explicit values in sorted order, or nil for All.
func (s Selection) Values() []string {
	if s.values == nil {
		return nil
	}
	out := make([]string, 0, len(s.values))
	for v := range s.values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
