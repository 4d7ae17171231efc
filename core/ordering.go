package core

import (
	"sort"
	"strings"
)

// Ordering is one `ordering` criterion of a list screen, e.g. "-price" -> {price, false}.
type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// ParseOrderings parses a comma separated list of fields, a leading "-" meaning descending.
func ParseOrderings(raw string) []Ordering {
	var ords []Ordering
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" || field == "-" {
			continue
		}
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		ords = append(ords, Ordering{Field: field, Ascending: !descending})
	}
	return ords
}

// Comparator compares two records on one field: <0, 0 or >0.
type Comparator[T any] func(a, b T) int

// SortBy stably sorts records by the given orderings; unknown fields are ignored.
// It is a screen-local sort and never applies to a registry.
func SortBy[T any](records []T, ords []Ordering, fields map[string]Comparator[T]) {
	if len(ords) == 0 {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		for _, ord := range ords {
			cmp, ok := fields[ord.Field]
			if !ok {
				continue
			}
			c := cmp(records[i], records[j])
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

func CompareStrings(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func CompareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
